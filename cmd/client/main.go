package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/spf13/viper"

	"hijabstore/internal/client"
	"hijabstore/internal/logger"
)

const usage = `usage: hijab [-config file] <command> [args]

commands:
  register -email E -password P [-role user|admin]
  login -email E -password P
  logout
  whoami
  search -key API_KEY KEYWORD
  users list
  users edit ID EMAIL
  users delete ID
`

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func loadConfig(path string) (*viper.Viper, error) {
	v := viper.New()
	v.SetEnvPrefix("HIJAB")
	v.AutomaticEnv()
	v.SetDefault("api_url", client.DefaultBaseURL)
	v.SetDefault("session_file", client.DefaultSessionPath())
	v.SetDefault("timeout", 10*time.Second)
	v.SetDefault("log_level", "warn")

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home + "/.hijabstore")
		}
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}
	return v, nil
}

func run(args []string, out io.Writer) error {
	global := flag.NewFlagSet("hijab", flag.ContinueOnError)
	configPath := global.String("config", "", "config file (yaml)")
	global.Usage = func() { fmt.Fprint(global.Output(), usage) }
	if err := global.Parse(args); err != nil {
		return err
	}
	rest := global.Args()
	if len(rest) == 0 {
		global.Usage()
		return errors.New("missing command")
	}

	v, err := loadConfig(*configPath)
	if err != nil {
		return err
	}
	logger.Init(logger.Options{Level: v.GetString("log_level"), Pretty: true, Output: os.Stderr})

	api := client.NewClient(v.GetString("api_url"), client.WithTimeout(v.GetDuration("timeout")))
	app := client.NewApp(api, client.NewFileSessionStore(v.GetString("session_file")))

	ctx := context.Background()
	if err := app.Start(ctx); err != nil {
		return err
	}

	cmd, cmdArgs := rest[0], rest[1:]
	switch cmd {
	case "register":
		return register(ctx, app, cmdArgs, out)
	case "login":
		return login(ctx, app, cmdArgs, out)
	case "logout":
		if err := app.Logout(); err != nil {
			return err
		}
		fmt.Fprintln(out, "Logout berhasil.")
		return nil
	case "whoami":
		return whoami(app, out)
	case "search":
		return search(ctx, app, cmdArgs, out)
	case "users":
		return users(ctx, app, cmdArgs, out)
	default:
		global.Usage()
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func register(ctx context.Context, app *client.App, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("register", flag.ContinueOnError)
	email := fs.String("email", "", "email")
	password := fs.String("password", "", "password")
	role := fs.String("role", "user", "user or admin")
	if err := fs.Parse(args); err != nil {
		return err
	}

	user, msg, err := app.Register(ctx, *email, *password, *role)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, msg)
	fmt.Fprintf(out, "email: %s\nrole: %s\napiKey: %s\n", user.Email, user.Role, user.APIKey)
	return nil
}

func login(ctx context.Context, app *client.App, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("login", flag.ContinueOnError)
	email := fs.String("email", "", "email")
	password := fs.String("password", "", "password")
	if err := fs.Parse(args); err != nil {
		return err
	}

	s, err := app.Login(ctx, *email, *password)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Login Berhasil. Halo %s (%s)\nAPI Key Anda: %s\n", s.Email, s.Role, s.APIKey)
	if s.IsAdmin() {
		printUsers(app, out)
	}
	return nil
}

func whoami(app *client.App, out io.Writer) error {
	s := app.Session()
	if s == nil {
		return client.ErrNotLoggedIn
	}
	fmt.Fprintf(out, "id: %d\nemail: %s\nrole: %s\napiKey: %s\n", s.ID, s.Email, s.Role, s.APIKey)
	return nil
}

func search(ctx context.Context, app *client.App, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("search", flag.ContinueOnError)
	key := fs.String("key", "", "your API key")
	if err := fs.Parse(args); err != nil {
		return err
	}
	keyword := ""
	if fs.NArg() > 0 {
		keyword = fs.Arg(0)
	}

	res, err := app.Search(ctx, *key, keyword)
	if err != nil {
		return err
	}
	if res.Notice != "" {
		fmt.Fprintln(out, res.Notice)
		return nil
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAMA\tKATEGORI\tHARGA\tGAMBAR")
	for _, p := range res.Products {
		fmt.Fprintf(tw, "%s\t%s\tRp %s\t%s\n", p.Name, p.Category, p.Price.StringFixed(0), p.ImageURL)
	}
	return tw.Flush()
}

func users(ctx context.Context, app *client.App, args []string, out io.Writer) error {
	if len(args) == 0 {
		return errors.New("usage: users list|edit ID EMAIL|delete ID")
	}

	switch args[0] {
	case "list":
		if _, err := app.LoadUsers(ctx); err != nil {
			return err
		}
		printUsers(app, out)
		return nil
	case "edit":
		if len(args) != 3 {
			return errors.New("usage: users edit ID EMAIL")
		}
		id, err := parseID(args[1])
		if err != nil {
			return err
		}
		if err := app.EditUser(ctx, id, args[2]); err != nil {
			return err
		}
		fmt.Fprintln(out, "User berhasil diupdate!")
		printUsers(app, out)
		return nil
	case "delete":
		if len(args) != 2 {
			return errors.New("usage: users delete ID")
		}
		id, err := parseID(args[1])
		if err != nil {
			return err
		}
		if _, err := app.LoadUsers(ctx); err != nil {
			return err
		}
		if err := app.DeleteUser(ctx, id); err != nil {
			return err
		}
		fmt.Fprintln(out, "User berhasil dihapus!")
		printUsers(app, out)
		return nil
	default:
		return fmt.Errorf("unknown users command %q", args[0])
	}
}

func printUsers(app *client.App, out io.Writer) {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tEMAIL\tROLE\tAPI KEY")
	for _, u := range app.Users() {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", u.ID, u.Email, u.Role, u.APIKey)
	}
	_ = tw.Flush()
}

func parseID(s string) (uint, error) {
	id, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid user id %q", s)
	}
	return uint(id), nil
}
