package cmd

import (
	"fmt"
	"os"

	"github.com/Josue-Alexander/gestionitp/internal/console/client"
	"github.com/Josue-Alexander/gestionitp/internal/console/export"
	"github.com/Josue-Alexander/gestionitp/internal/console/gate"
	"github.com/Josue-Alexander/gestionitp/internal/console/session"
	"github.com/Josue-Alexander/gestionitp/internal/console/views"

	"github.com/spf13/cobra"
)

// stderrNotifier imprime los mensajes de error de las mutaciones tal cual
// los devuelve el servicio.
type stderrNotifier struct{}

func (stderrNotifier) Notify(message string) {
	fmt.Fprintln(os.Stderr, message)
}

func consoleSetup() (*session.Store, *client.Client, error) {
	path := os.Getenv("GESTIONITP_TOKEN_FILE")
	if path == "" {
		var err error
		if path, err = session.DefaultStoragePath(); err != nil {
			return nil, nil, err
		}
	}

	store := session.NewStore(session.NewFileStorage(path))
	store.Initialize()

	baseURL := os.Getenv("GESTIONITP_API")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}

	return store, client.New(baseURL, store), nil
}

var ConsoleCmd = &cobra.Command{
	Use:   "console",
	Short: "Interact with the service the way the admin console does.",
}

var consoleLoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Authenticate and persist the session token.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		store, api, err := consoleSetup()
		if err != nil {
			return err
		}

		email, _ := cmd.Flags().GetString("email")
		password, _ := cmd.Flags().GetString("password")

		if err := api.Login(cmd.Context(), email, password); err != nil {
			return err
		}

		credential := store.Credential()
		fmt.Printf("Sesión iniciada como %s (%s)\n", credential.Nombre, credential.Role)
		return nil
	},
}

var consoleLogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Discard the persisted session.",
	RunE: func(_ *cobra.Command, _ []string) error {
		store, _, err := consoleSetup()
		if err != nil {
			return err
		}
		store.Logout()
		fmt.Println("Sesión cerrada")
		return nil
	},
}

var consoleStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the current session and what it can reach.",
	RunE: func(_ *cobra.Command, _ []string) error {
		store, _, err := consoleSetup()
		if err != nil {
			return err
		}

		credential := store.Credential()
		if credential == nil {
			fmt.Println("Sin sesión activa")
			return nil
		}

		fmt.Printf("Usuario: %s <%s> rol=%s\n", credential.Nombre, credential.Email, credential.Role)
		for path := range gate.Routes {
			if gate.EvaluatePath(store, path) == gate.Render {
				fmt.Println("  ", path)
			}
		}
		return nil
	},
}

var consoleAssetsCmd = &cobra.Command{
	Use:   "activos",
	Short: "List assets, optionally exporting CSV or printable labels.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		store, api, err := consoleSetup()
		if err != nil {
			return err
		}

		if decision := gate.EvaluatePath(store, "/activos"); decision != gate.Render {
			return fmt.Errorf("acceso denegado (%s)", decision)
		}

		view := views.NewAssetsView(api, stderrNotifier{}, views.AlwaysConfirm{})
		if err := view.Load(cmd.Context()); err != nil {
			return err
		}

		query, _ := cmd.Flags().GetString("buscar")
		matched := views.FilterAssets(view.Assets, query)

		if labels, _ := cmd.Flags().GetBool("etiquetas"); labels {
			return export.WriteLabels(os.Stdout, matched)
		}
		return export.WriteAssetsCSV(os.Stdout, matched)
	},
}

func init() {
	consoleLoginCmd.Flags().String("email", "", "Account email")
	consoleLoginCmd.Flags().String("password", "", "Account password")
	_ = consoleLoginCmd.MarkFlagRequired("email")
	_ = consoleLoginCmd.MarkFlagRequired("password")

	consoleAssetsCmd.Flags().String("buscar", "", "Substring filter")
	consoleAssetsCmd.Flags().Bool("etiquetas", false, "Emit printable labels instead of CSV")

	ConsoleCmd.AddCommand(consoleLoginCmd, consoleLogoutCmd, consoleStatusCmd, consoleAssetsCmd)
}
