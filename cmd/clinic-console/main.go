// Command clinic-console serves the clinic management console and exposes
// its session operations on the command line.
//
// @title        Clinic Console
// @version      1.0
// @description  Session, clinic and audit console over the clinic backend.
// @host         localhost:4200
// @BasePath     /
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"maps"
	"net/http"
	"os"
	"os/signal"
	"slices"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/clinicdesk/clinic-console/internal/api"
	"github.com/clinicdesk/clinic-console/internal/api/handler"
	"github.com/clinicdesk/clinic-console/internal/core/domain"
	"github.com/clinicdesk/clinic-console/internal/core/service"
	"github.com/clinicdesk/clinic-console/internal/forms"
	"github.com/clinicdesk/clinic-console/internal/guard"
	"github.com/clinicdesk/clinic-console/internal/infrastructure/expiry"
	"github.com/clinicdesk/clinic-console/internal/store/auth"
	"github.com/clinicdesk/clinic-console/pkg/logger"
)

const commandTimeout = 30 * time.Second

func main() {
	rootCmd := &cobra.Command{
		Use:           "clinic-console",
		Short:         "Clinic management console",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(loginCmd())
	rootCmd.AddCommand(logoutCmd())
	rootCmd.AddCommand(whoamiCmd())
	rootCmd.AddCommand(clinicsCmd())
	rootCmd.AddCommand(patientsCmd())
	rootCmd.AddCommand(formCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// withApp runs fn against a bootstrapped console bounded by commandTimeout.
func withApp(fn func(ctx context.Context, a *app) error) error {
	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	a, err := bootstrap(ctx)
	if err != nil {
		return err
	}
	defer a.shutdown()
	if err := a.settle(ctx); err != nil {
		return err
	}
	return fn(ctx, a)
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

type sessionView struct {
	Phase    domain.SessionPhase `json:"phase"`
	UserID   *int                `json:"userId,omitempty"`
	ClinicID *int                `json:"clinicId,omitempty"`
	Role     string              `json:"role,omitempty"`
	Location string              `json:"location"`
	Error    *string             `json:"error,omitempty"`
}

func (a *app) view() sessionView {
	st := a.session.State()
	return sessionView{
		Phase:    st.Phase(),
		UserID:   st.UserID,
		ClinicID: st.ClinicID,
		Role:     a.tenant.Role(),
		Location: a.nav.Current(),
		Error:    st.Error,
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the console server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

func runServer() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := bootstrap(ctx)
	if err != nil {
		return err
	}
	defer a.shutdown()
	log := logger.For("server")

	watcher, err := expiry.New(a.session, a.cfg.ExpirySchedule, logger.For("expiry"))
	if err != nil {
		return err
	}
	watcher.Start(ctx)

	e := api.NewRouter(api.Deps{
		Session: a.session,
		Tenant:  a.tenant,
		Guards: api.Guards{
			Auth:          guard.NewAuthGuard(a.session, logger.For("guard")),
			AuditAccess:   guard.NewAuditAccessGuard(a.perms, a.tenant, logger.For("guard")),
			AuditAdmin:    guard.NewAuditAdminGuard(a.perms, logger.For("guard")),
			ConsentAccess: guard.NewConsentAccessGuard(a.perms, logger.For("guard")),
		},
		Auth: handler.NewAuthHandler(a.session, a.authSvc, a.tenant, a.clinicCtx, a.nav),
		Entities: handler.NewEntityHandler(a.clinicCtx, handler.EntityServices{
			Clinics:       a.clinics,
			Patients:      a.entities.patients,
			Appointments:  a.entities.appointments,
			Users:         a.entities.users,
			Roles:         a.entities.roles,
			Prescriptions: a.entities.prescriptions,
			History:       a.entities.history,
		}),
		Forms: handler.NewFormHandler(a.builder),
		Audit: handler.NewAuditHandler(a.audit, a.consents, a.perms),
		Health: handler.NewHealthHandler(map[string]handler.Probe{
			"session": func(ctx context.Context) error {
				_, _, err := a.storage.Get(ctx, a.cfg.Session.Prefix+":probe")
				return err
			},
		}),
		Log: logger.For("http"),
	})

	go func() {
		log.Info().Str("addr", a.cfg.ConsoleAddr).Msg("starting server")
		if err := e.Start(a.cfg.ConsoleAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("server error")
			stop()
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	log.Info().Msg("server stopped")
	return nil
}

func loginCmd() *cobra.Command {
	var email, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and persist the session",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(ctx context.Context, a *app) error {
				a.session.Dispatch(auth.Login{Email: email, Password: password})
				if err := a.settle(ctx); err != nil {
					return err
				}
				v := a.view()
				if err := printJSON(cmd.OutOrStdout(), v); err != nil {
					return err
				}
				if v.Phase == domain.PhaseError || v.Phase == domain.PhaseAnonymous {
					return domain.ErrInvalidCredentials
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Clear the persisted session",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(ctx context.Context, a *app) error {
				a.session.Dispatch(auth.Logout{})
				if err := a.settle(ctx); err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), a.view())
			})
		},
	}
}

func whoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the restored session",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(_ context.Context, a *app) error {
				out := struct {
					sessionView
					Permissions []domain.Permission       `json:"permissions"`
					Clinic      service.ClinicRequirement `json:"clinic"`
				}{
					sessionView: a.view(),
					Permissions: slices.Sorted(maps.Keys(a.perms.Permissions())),
					Clinic:      a.clinicCtx.RequirementStatus(),
				}
				return printJSON(cmd.OutOrStdout(), out)
			})
		},
	}
}

func requireLogin(a *app) error {
	if !a.session.State().LoggedIn() {
		return domain.ErrNotLoggedIn
	}
	return nil
}

func clinicsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clinics",
		Short: "List the clinics visible to the session",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(ctx context.Context, a *app) error {
				if err := requireLogin(a); err != nil {
					return err
				}
				clinics, err := a.clinics.List(ctx)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), clinics)
			})
		},
	}
}

func patientsCmd() *cobra.Command {
	var clinicID int
	cmd := &cobra.Command{
		Use:   "patients",
		Short: "List patients of the active clinic",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(ctx context.Context, a *app) error {
				if err := requireLogin(a); err != nil {
					return err
				}
				if clinicID == 0 {
					resolved := a.clinicCtx.Resolve(ctx)
					if resolved == nil {
						return errors.New("no clinic selected, pass --clinic")
					}
					clinicID = *resolved
				}
				patients, err := a.entities.patients.List(ctx, clinicID)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), patients)
			})
		},
	}
	cmd.Flags().IntVar(&clinicID, "clinic", 0, "clinic id (defaults to the active clinic)")
	return cmd
}

func formCmd() *cobra.Command {
	var create bool
	cmd := &cobra.Command{
		Use:   "form <entity>",
		Short: "Print the form built for an entity type",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(ctx context.Context, a *app) error {
				f, err := a.builder.Build(ctx, forms.Request{
					EntityType: args[0],
					Create:     create,
					ClinicID:   a.session.State().ClinicID,
				})
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), map[string]any{
					"fields": f.Fields,
					"errors": f.Errors(),
				})
			})
		},
	}
	cmd.Flags().BoolVar(&create, "create", false, "build the creation variant")
	return cmd
}
