package app

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/vietanh2810/eventdesk/internal/domain"
	"github.com/vietanh2810/eventdesk/internal/repository"
	"github.com/vietanh2810/eventdesk/internal/repository/dao"
)

func newInspectCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:       "inspect <entity>",
		Short:     "Print every record of one .dat file as JSON",
		Args:      cobra.ExactArgs(1),
		ValidArgs: entityNames(),
		RunE: func(cmd *cobra.Command, args []string) error {
			entity, err := dao.ParseEntity(args[0])
			if err != nil {
				return err
			}

			rt, err := bootstrap(*configPath)
			if err != nil {
				return err
			}
			defer rt.close()

			return inspect(cmd.OutOrStdout(), rt.store, entity)
		},
	}
}

func inspect(w io.Writer, store *dao.Store, entity dao.Entity) error {
	var (
		records any
		err     error
	)
	switch entity {
	case dao.EntityOrganiser:
		records, err = repository.NewUserRepository(domain.RoleOrganiser, store.Organisers).List()
	case dao.EntityCustomer:
		records, err = repository.NewUserRepository(domain.RoleCustomer, store.Customers).List()
	case dao.EntityEvent:
		records, err = repository.NewEventRepository(store.Events).List()
	case dao.EntityStaff:
		records, err = repository.NewStaffRepository(store.Staff).List()
	case dao.EntityVendor:
		records, err = repository.NewVendorRepository(store.Vendors).List()
	case dao.EntityRegistration:
		records, err = repository.NewRegistrationRepository(store.Registrations).List()
	default:
		return fmt.Errorf("unknown entity %q", entity)
	}
	if err != nil {
		return err
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(records)
}

func newVerifyCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "verify",
		Short: "Check every .dat file against the configured record layout",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := bootstrap(*configPath)
			if err != nil {
				return err
			}
			defer rt.close()

			if err := rt.checkLayout(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "all data files match layout %s\n", rt.store.Layout)
			return nil
		},
	}
}

func newMigrateCmd(configPath *string) *cobra.Command {
	var from string

	cmd := &cobra.Command{
		Use:       "migrate <entity>",
		Short:     "Rewrite one .dat file from an older layout into the configured one",
		Args:      cobra.ExactArgs(1),
		ValidArgs: entityNames(),
		RunE: func(cmd *cobra.Command, args []string) error {
			entity, err := dao.ParseEntity(args[0])
			if err != nil {
				return err
			}
			fromLayout, err := dao.ParseLayout(from)
			if err != nil {
				return err
			}

			rt, err := bootstrap(*configPath)
			if err != nil {
				return err
			}
			defer rt.close()

			n, err := rt.store.Migrate(entity, fromLayout)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "migrated %d %s records from %s to %s\n", n, entity, fromLayout, rt.store.Layout)
			return nil
		},
	}
	cmd.Flags().StringVar(&from, "from", "v1", "layout the file was written with")

	return cmd
}

func newRebuildCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "rebuild",
		Short: "Rewrite the JSON projection from the .dat files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := bootstrap(*configPath)
			if err != nil {
				return err
			}
			defer rt.close()

			if err := rt.rebuild(cmd.Context(), "cli"); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "projection rebuilt in %s\n", rt.store.Dir)
			return nil
		},
	}
}

func entityNames() []string {
	names := make([]string, len(dao.Entities))
	for i, e := range dao.Entities {
		names[i] = string(e)
	}
	return names
}
