package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"

	"jourj/internal/config"
	"jourj/internal/identity"
	"jourj/internal/models"
	"jourj/internal/repository"
	"jourj/internal/session"
	"jourj/internal/storage"
	"jourj/internal/visibility"
)

func main() {
	// Load .env file first, but don't error if it doesn't exist.
	_ = godotenv.Load()

	log := zerolog.New(os.Stdout).With().Str("component", "Main").Logger()

	app := &cli.App{
		Name:  "jourj",
		Usage: "Coordinate an event's roster, schedule and documents.",
		Commands: []*cli.Command{
			organizeCommand(),
			viewCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Error().Err(err).Msg("Application failed")
		os.Exit(1)
	}
}

func organizeCommand() *cli.Command {
	return &cli.Command{
		Name:  "organize",
		Usage: "Open the organizer console: manage people, vendors, tasks and documents.",
		Action: func(c *cli.Context) error {
			cfg := config.LoadConfig()
			setupLogging(cfg)

			store, err := storage.Open(cfg.StorePath())
			if err != nil {
				return fmt.Errorf("failed to open store: %w", err)
			}
			defer store.Close()

			repo := repository.New(store)

			fmt.Printf("🎉 %s — Organizer Console\n", repo.Config().Name)
			fmt.Println("=================================")

			organizerLoop(repo)
			return nil
		},
	}
}

func organizerLoop(repo *repository.Repository) {
	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Println("\nCommands:")
		fmt.Println("  1. Show summary")
		fmt.Println("  2. Show configuration")
		fmt.Println("  3. List people")
		fmt.Println("  4. Add person")
		fmt.Println("  5. Confirm person")
		fmt.Println("  6. Delete person")
		fmt.Println("  7. List vendors")
		fmt.Println("  8. Add vendor")
		fmt.Println("  9. Confirm vendor")
		fmt.Println("  10. Delete vendor")
		fmt.Println("  11. List planning")
		fmt.Println("  12. Add task")
		fmt.Println("  13. Update task status")
		fmt.Println("  14. Delete task")
		fmt.Println("  15. List documents")
		fmt.Println("  16. Add document")
		fmt.Println("  17. Delete document")
		fmt.Println("  18. Exit")
		fmt.Print("\nEnter command (1-18): ")

		if !scanner.Scan() {
			return
		}

		switch strings.TrimSpace(scanner.Text()) {
		case "1":
			showSummary(repo)
		case "2":
			showConfig(repo)
		case "3":
			listPeople(repo)
		case "4":
			addPerson(scanner, repo)
		case "5":
			confirmPerson(scanner, repo)
		case "6":
			deletePerson(scanner, repo)
		case "7":
			listVendors(repo)
		case "8":
			addVendor(scanner, repo)
		case "9":
			confirmVendor(scanner, repo)
		case "10":
			deleteVendor(scanner, repo)
		case "11":
			listPlanning(repo)
		case "12":
			addTask(scanner, repo)
		case "13":
			updateTaskStatus(scanner, repo)
		case "14":
			deleteTask(scanner, repo)
		case "15":
			listDocuments(repo)
		case "16":
			addDocument(scanner, repo)
		case "17":
			deleteDocument(scanner, repo)
		case "18":
			fmt.Println("Exiting...")
			return
		default:
			fmt.Println("Invalid command. Please try again.")
		}
	}
}

func showSummary(repo *repository.Repository) {
	s := repo.Summary()
	cfg := repo.Config()
	fmt.Printf("\n📋 %s (%s) — %s\n", cfg.Name, cfg.Type, cfg.Date)
	fmt.Printf("People: %d (%d confirmed)\n", s.People, s.PeopleConfirmed)
	fmt.Printf("Vendors: %d (%d confirmed)\n", s.Vendors, s.VendorsConfirmed)
	fmt.Printf("Tasks: %d (%d completed)\n", s.Tasks, s.TasksCompleted)
	fmt.Printf("Documents: %d\n", s.Documents)
}

func showConfig(repo *repository.Repository) {
	cfg := repo.Config()
	fmt.Println("\n⚙️  Event configuration:")
	fmt.Println(strings.Repeat("-", 60))
	fmt.Printf("Name: %s\n", cfg.Name)
	fmt.Printf("Type: %s\n", cfg.Type)
	fmt.Printf("Date: %s\n", cfg.Date)
	fmt.Printf("Location: %s\n", cfg.Location)
	fmt.Printf("Description: %s\n", cfg.Description)
	fmt.Printf("Colors: %s / %s\n", cfg.PrimaryColor, cfg.SecondaryColor)
	if cfg.Logo != "" {
		fmt.Printf("Logo: %s\n", cfg.Logo)
	}
	fmt.Printf("Timezone: %s\n", cfg.Timezone)
}

func listPeople(repo *repository.Repository) {
	people := repo.People()
	if len(people) == 0 {
		fmt.Println("\nNo people found.")
		return
	}

	fmt.Printf("\n👥 People (%d total):\n", len(people))
	fmt.Println(strings.Repeat("-", 60))
	for _, p := range people {
		confirmed := "pending"
		if p.Confirmed {
			confirmed = "confirmed"
		}
		fmt.Printf("%s — %s (%s, %s)\n", p.ID, p.Name, p.Role, confirmed)
	}
}

func addPerson(scanner *bufio.Scanner, repo *repository.Repository) {
	name := prompt(scanner, "Enter name: ")
	role := prompt(scanner, "Enter role (bride/groom/witness/family/friend): ")
	email := prompt(scanner, "Enter email: ")
	phone := prompt(scanner, "Enter phone: ")

	people := append(repo.People(), models.Person{
		ID:    models.NewID(),
		Name:  name,
		Role:  models.PersonRole(role),
		Email: email,
		Phone: phone,
	})

	if err := repo.SavePeople(people); err != nil {
		fmt.Printf("❌ Error saving people: %v\n", err)
		return
	}
	fmt.Println("✅ Person added.")
}

func confirmPerson(scanner *bufio.Scanner, repo *repository.Repository) {
	id := prompt(scanner, "Enter person id: ")

	people, found := togglePersonConfirmed(repo.People(), id)
	if !found {
		fmt.Println("❌ No person with that id.")
		return
	}
	if err := repo.SavePeople(people); err != nil {
		fmt.Printf("❌ Error saving people: %v\n", err)
		return
	}
	fmt.Println("✅ Confirmation toggled.")
}

func deletePerson(scanner *bufio.Scanner, repo *repository.Repository) {
	id := prompt(scanner, "Enter person id: ")

	people, found := removePerson(repo.People(), id)
	if !found {
		fmt.Println("❌ No person with that id.")
		return
	}
	if err := repo.SavePeople(people); err != nil {
		fmt.Printf("❌ Error saving people: %v\n", err)
		return
	}
	fmt.Println("✅ Person deleted. Assignments pointing at them are simply skipped from now on.")
}

func listVendors(repo *repository.Repository) {
	vendors := repo.Vendors()
	if len(vendors) == 0 {
		fmt.Println("\nNo vendors found.")
		return
	}

	fmt.Printf("\n🏪 Vendors (%d total):\n", len(vendors))
	fmt.Println(strings.Repeat("-", 60))
	for _, v := range vendors {
		confirmed := "pending"
		if v.Confirmed {
			confirmed = "confirmed"
		}
		fmt.Printf("%s — %s (%s, %s)\n", v.ID, v.Name, v.Type, confirmed)
	}
}

func addVendor(scanner *bufio.Scanner, repo *repository.Repository) {
	name := prompt(scanner, "Enter name: ")
	vtype := prompt(scanner, "Enter type (venue/caterer/photographer/florist/beauty/music): ")
	contact := prompt(scanner, "Enter contact: ")
	phone := prompt(scanner, "Enter phone: ")

	vendors := append(repo.Vendors(), models.Vendor{
		ID:      models.NewID(),
		Name:    name,
		Type:    models.VendorType(vtype),
		Contact: contact,
		Phone:   phone,
	})

	if err := repo.SaveVendors(vendors); err != nil {
		fmt.Printf("❌ Error saving vendors: %v\n", err)
		return
	}
	fmt.Println("✅ Vendor added.")
}

func confirmVendor(scanner *bufio.Scanner, repo *repository.Repository) {
	id := prompt(scanner, "Enter vendor id: ")

	vendors, found := toggleVendorConfirmed(repo.Vendors(), id)
	if !found {
		fmt.Println("❌ No vendor with that id.")
		return
	}
	if err := repo.SaveVendors(vendors); err != nil {
		fmt.Printf("❌ Error saving vendors: %v\n", err)
		return
	}
	fmt.Println("✅ Confirmation toggled.")
}

func deleteVendor(scanner *bufio.Scanner, repo *repository.Repository) {
	id := prompt(scanner, "Enter vendor id: ")

	vendors, found := removeVendor(repo.Vendors(), id)
	if !found {
		fmt.Println("❌ No vendor with that id.")
		return
	}
	if err := repo.SaveVendors(vendors); err != nil {
		fmt.Printf("❌ Error saving vendors: %v\n", err)
		return
	}
	fmt.Println("✅ Vendor deleted.")
}

func listPlanning(repo *repository.Repository) {
	tasks := visibility.SortTasksByStart(repo.Tasks())
	if len(tasks) == 0 {
		fmt.Println("\nNo tasks found.")
		return
	}

	snap := visibility.Snapshot{People: repo.People(), Vendors: repo.Vendors()}

	fmt.Printf("\n📅 Planning (%d tasks):\n", len(tasks))
	fmt.Println(strings.Repeat("-", 60))
	for _, t := range tasks {
		fmt.Printf("%s - %s  %s [%s, %s]\n", t.StartTime, t.EndTime(), t.Title, t.Category, t.Status)
		if names := snap.AssignedNames(t); len(names) > 0 {
			fmt.Printf("  Assigned: %s\n", strings.Join(names, ", "))
		}
	}
}

func addTask(scanner *bufio.Scanner, repo *repository.Repository) {
	title := prompt(scanner, "Enter title: ")
	start := prompt(scanner, "Enter start time (HH:MM): ")
	durationStr := prompt(scanner, "Enter duration (minutes): ")
	category := prompt(scanner, "Enter category (preparation/logistics/ceremony/photos/reception): ")
	priority := prompt(scanner, "Enter priority (low/medium/high): ")
	assigned := prompt(scanner, "Enter assigned person ids (comma separated, empty for none): ")

	duration, err := strconv.Atoi(durationStr)
	if err != nil || duration <= 0 {
		fmt.Println("❌ Duration must be a positive number of minutes.")
		return
	}

	tasks := append(repo.Tasks(), models.Task{
		ID:              models.NewID(),
		Title:           title,
		StartTime:       start,
		Duration:        duration,
		Category:        models.TaskCategory(category),
		AssignedTo:      splitIDs(assigned),
		AssignedVendors: []string{},
		Status:          models.StatusScheduled,
		Priority:        models.TaskPriority(priority),
	})

	if err := repo.SaveTasks(tasks); err != nil {
		fmt.Printf("❌ Error saving tasks: %v\n", err)
		return
	}
	fmt.Println("✅ Task added.")
}

func updateTaskStatus(scanner *bufio.Scanner, repo *repository.Repository) {
	id := prompt(scanner, "Enter task id: ")
	status := prompt(scanner, "Enter status (scheduled/in-progress/completed/delayed): ")

	tasks, found := setTaskStatus(repo.Tasks(), id, models.TaskStatus(status))
	if !found {
		fmt.Println("❌ No task with that id.")
		return
	}
	if err := repo.SaveTasks(tasks); err != nil {
		fmt.Printf("❌ Error saving tasks: %v\n", err)
		return
	}
	fmt.Println("✅ Status updated.")
}

func deleteTask(scanner *bufio.Scanner, repo *repository.Repository) {
	id := prompt(scanner, "Enter task id: ")

	tasks, found := removeTask(repo.Tasks(), id)
	if !found {
		fmt.Println("❌ No task with that id.")
		return
	}
	if err := repo.SaveTasks(tasks); err != nil {
		fmt.Printf("❌ Error saving tasks: %v\n", err)
		return
	}
	fmt.Println("✅ Task deleted.")
}

func listDocuments(repo *repository.Repository) {
	documents := repo.Documents()
	if len(documents) == 0 {
		fmt.Println("\nNo documents found.")
		return
	}

	fmt.Printf("\n📄 Documents (%d total):\n", len(documents))
	fmt.Println(strings.Repeat("-", 60))
	for _, d := range documents {
		href, local := visibility.DocumentLink(d)
		location := href
		if local {
			location = href + " (local file)"
		}
		fmt.Printf("%s [%s, %s] — %s\n", d.Title, d.Type, d.Permission, location)
	}
}

func addDocument(scanner *bufio.Scanner, repo *repository.Repository) {
	title := prompt(scanner, "Enter title: ")
	dtype := prompt(scanner, "Enter type (contract/photo/planning/invoice/other): ")
	url := prompt(scanner, "Enter url or local filename: ")
	local := prompt(scanner, "Is this a local file? (y/n): ")
	permission := prompt(scanner, "Enter permission (public/team/specific): ")
	assigned := prompt(scanner, "Enter assigned person ids (comma separated, empty for none): ")

	documents := append(repo.Documents(), models.Document{
		ID:              models.NewID(),
		Title:           title,
		Type:            models.DocumentType(dtype),
		URL:             url,
		IsLocal:         strings.EqualFold(local, "y"),
		AssignedTo:      splitIDs(assigned),
		AssignedVendors: []string{},
		Permission:      models.Permission(permission),
		UploadDate:      time.Now().Format(time.RFC3339),
	})

	if err := repo.SaveDocuments(documents); err != nil {
		fmt.Printf("❌ Error saving documents: %v\n", err)
		return
	}
	fmt.Println("✅ Document added.")
}

func deleteDocument(scanner *bufio.Scanner, repo *repository.Repository) {
	id := prompt(scanner, "Enter document id: ")

	documents, found := removeDocument(repo.Documents(), id)
	if !found {
		fmt.Println("❌ No document with that id.")
		return
	}
	if err := repo.SaveDocuments(documents); err != nil {
		fmt.Printf("❌ Error saving documents: %v\n", err)
		return
	}
	fmt.Println("✅ Document deleted.")
}

func viewCommand() *cli.Command {
	return &cli.Command{
		Name:  "view",
		Usage: "Open the participant view: your planning, documents and progress.",
		Action: func(c *cli.Context) error {
			cfg := config.LoadConfig()
			setupLogging(cfg)

			store, err := storage.Open(cfg.StorePath())
			if err != nil {
				return fmt.Errorf("failed to open store: %w", err)
			}
			defer store.Close()

			ids := identity.NewManager(store)
			sess := session.New(store, ids, cfg.RefreshInterval)

			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			go sess.Run(ctx)

			// Stop the refresh loop on Ctrl-C as well as menu exit.
			sig := make(chan os.Signal, 1)
			signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
			go func() {
				<-sig
				cancel()
				fmt.Println("\nGoodbye! 👋")
				os.Exit(0)
			}()

			viewerLoop(sess)
			return nil
		},
	}
}

func viewerLoop(sess *session.Session) {
	scanner := bufio.NewScanner(os.Stdin)

	for {
		if record, ok := sess.CurrentViewerRecord(); ok {
			fmt.Printf("\nViewing as %s (%s)\n", record.Name, record.Role)
		} else {
			fmt.Println("\nNo participant selected.")
			if !selectParticipant(scanner, sess) {
				return
			}
			continue
		}

		fmt.Println("\nCommands:")
		fmt.Println("  1. My planning")
		fmt.Println("  2. My documents")
		fmt.Println("  3. My progress")
		fmt.Println("  4. Switch participant")
		fmt.Println("  5. Exit")
		fmt.Print("\nEnter command (1-5): ")

		if !scanner.Scan() {
			return
		}

		switch strings.TrimSpace(scanner.Text()) {
		case "1":
			showViewerPlanning(sess)
		case "2":
			showViewerDocuments(sess)
		case "3":
			fmt.Printf("\nProgress: %d%% of your tasks completed.\n", sess.ProgressForCurrentViewer())
		case "4":
			if err := sess.Identity().Clear(); err != nil {
				fmt.Printf("❌ Error clearing selection: %v\n", err)
			}
		case "5":
			fmt.Println("Exiting...")
			return
		default:
			fmt.Println("Invalid command. Please try again.")
		}
	}
}

func selectParticipant(scanner *bufio.Scanner, sess *session.Session) bool {
	snap := sess.Snapshot()

	fmt.Println("\nPersonal team:")
	for _, p := range snap.People {
		fmt.Printf("  %s — %s (%s)\n", p.ID, p.Name, p.Role)
	}
	fmt.Println("Vendors:")
	for _, v := range snap.Vendors {
		fmt.Printf("  %s — %s (%s)\n", v.ID, v.Name, v.Type)
	}

	kind := prompt(scanner, "\nAre you personal team or a vendor? (personal/professional, empty to exit): ")
	if kind == "" {
		return false
	}
	id := prompt(scanner, "Enter your id: ")

	if err := sess.Identity().Select(identity.Kind(kind), id); err != nil {
		fmt.Printf("❌ Error saving selection: %v\n", err)
	}
	sess.Refresh()
	return true
}

func showViewerPlanning(sess *session.Session) {
	tasks := visibility.SortTasksByStart(sess.TasksForCurrentViewer())
	if len(tasks) == 0 {
		fmt.Println("\nNo tasks assigned to you yet.")
		return
	}

	snap := sess.Snapshot()
	fmt.Printf("\n📅 Your planning (%d tasks):\n", len(tasks))
	fmt.Println(strings.Repeat("-", 60))
	for _, t := range tasks {
		fmt.Printf("%s - %s  %s (%s, %s)\n", t.StartTime, t.EndTime(), t.Title, models.FormatDuration(t.Duration), t.Status)
		if names := snap.AssignedNames(t); len(names) > 0 {
			fmt.Printf("  With: %s\n", strings.Join(names, ", "))
		}
	}
}

func showViewerDocuments(sess *session.Session) {
	documents := sess.DocumentsForCurrentViewer()
	if len(documents) == 0 {
		fmt.Println("\nNo documents shared with you yet.")
		return
	}

	fmt.Printf("\n📄 Your documents (%d total):\n", len(documents))
	fmt.Println(strings.Repeat("-", 60))
	for _, d := range documents {
		href, local := visibility.DocumentLink(d)
		if local {
			fmt.Printf("%s [%s] — local file: %s\n", d.Title, d.Type, href)
		} else {
			fmt.Printf("%s [%s] — %s\n", d.Title, d.Type, href)
		}
	}
}

func setupLogging(cfg *config.Config) {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
}

func prompt(scanner *bufio.Scanner, label string) string {
	fmt.Print(label)
	if !scanner.Scan() {
		return ""
	}
	return strings.TrimSpace(scanner.Text())
}

// The repository has no per-record operations: edits read the current
// collection, compute the replacement, and save the whole thing. The
// helpers below compute those replacements; found is false when no
// record carries the id.

func togglePersonConfirmed(people []models.Person, id string) ([]models.Person, bool) {
	for i, p := range people {
		if p.ID == id {
			people[i].Confirmed = !p.Confirmed
			return people, true
		}
	}
	return people, false
}

func toggleVendorConfirmed(vendors []models.Vendor, id string) ([]models.Vendor, bool) {
	for i, v := range vendors {
		if v.ID == id {
			vendors[i].Confirmed = !v.Confirmed
			return vendors, true
		}
	}
	return vendors, false
}

func setTaskStatus(tasks []models.Task, id string, status models.TaskStatus) ([]models.Task, bool) {
	for i, t := range tasks {
		if t.ID == id {
			tasks[i].Status = status
			return tasks, true
		}
	}
	return tasks, false
}

// Deletion filters the id out of the collection; assignment lists on
// tasks and documents are left alone, dangling ids resolve to absent.

func removePerson(people []models.Person, id string) ([]models.Person, bool) {
	result := make([]models.Person, 0, len(people))
	for _, p := range people {
		if p.ID != id {
			result = append(result, p)
		}
	}
	return result, len(result) != len(people)
}

func removeVendor(vendors []models.Vendor, id string) ([]models.Vendor, bool) {
	result := make([]models.Vendor, 0, len(vendors))
	for _, v := range vendors {
		if v.ID != id {
			result = append(result, v)
		}
	}
	return result, len(result) != len(vendors)
}

func removeTask(tasks []models.Task, id string) ([]models.Task, bool) {
	result := make([]models.Task, 0, len(tasks))
	for _, t := range tasks {
		if t.ID != id {
			result = append(result, t)
		}
	}
	return result, len(result) != len(tasks)
}

func removeDocument(documents []models.Document, id string) ([]models.Document, bool) {
	result := make([]models.Document, 0, len(documents))
	for _, d := range documents {
		if d.ID != id {
			result = append(result, d)
		}
	}
	return result, len(result) != len(documents)
}

func splitIDs(s string) []string {
	if s == "" {
		return []string{}
	}
	parts := strings.Split(s, ",")
	ids := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			ids = append(ids, trimmed)
		}
	}
	return ids
}
