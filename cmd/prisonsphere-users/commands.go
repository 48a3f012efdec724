package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	database "prisonsphere_backend/internals/databases"
	authService "prisonsphere_backend/internals/features/users/auth/service"
	"prisonsphere_backend/internals/seeds"
)

type dbOpener func() (*gorm.DB, error)

func newRootCmd(open dbOpener, out io.Writer) *cobra.Command {
	root := &cobra.Command{
		Use:           "prisonsphere-users",
		Short:         "PrisonSphere administration",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(out)

	root.AddCommand(newUserCmd(open, out))
	root.AddCommand(newMigrateCmd(open, out))
	root.AddCommand(newSeedCmd(open, out))
	return root
}

func newUserCmd(open dbOpener, out io.Writer) *cobra.Command {
	userCmd := &cobra.Command{
		Use:   "user",
		Short: "Manage staff accounts",
	}

	var (
		password string
		role     string
		inactive bool
	)
	createCmd := &cobra.Command{
		Use:   "create <user_name>",
		Short: "Create a staff account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := open()
			if err != nil {
				return err
			}
			u, err := authService.CreateUser(db, authService.CreateUserInput{
				UserName: args[0],
				Password: password,
				Role:     role,
				Inactive: inactive,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "created %s (%s) id=%s\n", u.UserName, u.Role, u.ID)
			return nil
		},
	}
	createCmd.Flags().StringVarP(&password, "password", "p", "", "initial password")
	createCmd.Flags().StringVarP(&role, "role", "r", "admin", "warden or admin")
	createCmd.Flags().BoolVar(&inactive, "inactive", false, "create the account deactivated")
	_ = createCmd.MarkFlagRequired("password")

	var (
		newPassword string
		newRole     string
		activate    bool
		deactivate  bool
	)
	updateCmd := &cobra.Command{
		Use:   "update <user_name>",
		Short: "Change password, role or active flag",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if activate && deactivate {
				return fmt.Errorf("--activate and --deactivate are mutually exclusive")
			}
			var in authService.UpdateUserInput
			if cmd.Flags().Changed("password") {
				in.Password = &newPassword
			}
			if cmd.Flags().Changed("role") {
				in.Role = &newRole
			}
			if activate || deactivate {
				active := activate
				in.Active = &active
			}

			db, err := open()
			if err != nil {
				return err
			}
			u, err := authService.UpdateUser(db, args[0], in)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "updated %s (%s) active=%t\n", u.UserName, u.Role, u.IsActive)
			return nil
		},
	}
	updateCmd.Flags().StringVarP(&newPassword, "password", "p", "", "new password")
	updateCmd.Flags().StringVarP(&newRole, "role", "r", "", "new role")
	updateCmd.Flags().BoolVar(&activate, "activate", false, "reactivate the account")
	updateCmd.Flags().BoolVar(&deactivate, "deactivate", false, "deactivate the account")

	deleteCmd := &cobra.Command{
		Use:   "delete <user_name>",
		Short: "Delete a staff account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := open()
			if err != nil {
				return err
			}
			if err := authService.DeleteUser(db, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(out, "deleted %s\n", args[0])
			return nil
		},
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List staff accounts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := open()
			if err != nil {
				return err
			}
			users, err := authService.ListUsers(db)
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "USER\tROLE\tACTIVE\tCREATED")
			for _, u := range users {
				fmt.Fprintf(tw, "%s\t%s\t%t\t%s\n", u.UserName, u.Role, u.IsActive, u.CreatedAt.UTC().Format("2006-01-02"))
			}
			return tw.Flush()
		},
	}

	userCmd.AddCommand(createCmd, updateCmd, deleteCmd, listCmd)
	return userCmd
}

func newMigrateCmd(open dbOpener, out io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update tables",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := open()
			if err != nil {
				return err
			}
			if err := database.Migrate(db); err != nil {
				return err
			}
			fmt.Fprintln(out, "migrated")
			return nil
		},
	}
}

func newSeedCmd(open dbOpener, out io.Writer) *cobra.Command {
	var usersFile string
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load the work program catalog and optional staff accounts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := open()
			if err != nil {
				return err
			}
			if err := seeds.RunAllSeeds(db, usersFile); err != nil {
				return err
			}
			fmt.Fprintln(out, "seeded")
			return nil
		},
	}
	cmd.Flags().StringVar(&usersFile, "users", "", "JSON file with user_name/password/role entries")
	return cmd
}
