package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"hospital-management/internal/chat"
	"hospital-management/internal/config"
	"hospital-management/internal/database"
	"hospital-management/internal/logger"
	"hospital-management/internal/repository"
	"hospital-management/internal/service"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "hmsctl",
		Short: "Hospital management admin tool",
	}

	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(createSuperAdminCmd())
	rootCmd.AddCommand(chatCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func openDB() (*gorm.DB, *zap.Logger, error) {
	cfg := config.LoadConfig()
	log, err := logger.New(cfg.Log.Level, cfg.IsRelease())
	if err != nil {
		return nil, nil, err
	}
	db, err := database.Connect(cfg, log)
	if err != nil {
		return nil, nil, err
	}
	return db, log, nil
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, _, err := openDB()
			if err != nil {
				return err
			}
			if err := database.Migrate(db); err != nil {
				return fmt.Errorf("migration failed: %w", err)
			}
			fmt.Println("Schema is up to date.")
			return nil
		},
	}
}

func createSuperAdminCmd() *cobra.Command {
	var in service.AccountInput
	cmd := &cobra.Command{
		Use:   "create-super-admin",
		Short: "Create a super_admin account",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, log, err := openDB()
			if err != nil {
				return err
			}
			authService := service.NewAuthService(
				repository.NewUserRepo(db),
				repository.NewProfileRepo(db),
				repository.NewAuditRepo(db),
				nil,
				log,
			)
			user, err := authService.CreateSuperAdmin(in)
			if err != nil {
				return err
			}
			fmt.Printf("Created super admin %s (id %d).\n", user.Username, user.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&in.Username, "username", "", "Login name")
	cmd.Flags().StringVar(&in.Email, "email", "", "Email address")
	cmd.Flags().StringVar(&in.Password, "password", "", "Password (at least 8 characters)")
	cmd.Flags().StringVar(&in.FirstName, "first-name", "Super", "First name")
	cmd.Flags().StringVar(&in.LastName, "last-name", "Admin", "Last name")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func chatCmd() *cobra.Command {
	var (
		baseURL string
		spacing time.Duration
		timeout time.Duration
	)
	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Talk to the help assistant of a running server",
		RunE: func(cmd *cobra.Command, args []string) error {
			queue := chat.NewQueue(chat.NewHTTPSender(strings.TrimRight(baseURL, "/"), timeout), spacing)
			defer queue.Close()

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Type a question, or an empty line to quit.")
			scanner := bufio.NewScanner(cmd.InOrStdin())
			for {
				fmt.Fprint(out, "> ")
				if !scanner.Scan() {
					return scanner.Err()
				}
				message := strings.TrimSpace(scanner.Text())
				if message == "" {
					return nil
				}
				reply, err := queue.Send(message)
				if err != nil {
					return err
				}
				fmt.Fprintln(out, reply.Response)
				for _, action := range reply.Actions {
					fmt.Fprintf(out, "  - %s: %s\n", action.Label, action.URL)
				}
			}
		},
	}
	cmd.Flags().StringVar(&baseURL, "url", "http://localhost:8080", "Server base URL")
	cmd.Flags().DurationVar(&spacing, "spacing", chat.DefaultSpacing, "Pause after each reply")
	cmd.Flags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")
	return cmd
}
