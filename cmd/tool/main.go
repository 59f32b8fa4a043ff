// Operator CLI for the auth service admin API.
//
// Usage:
//
//	authctl [-addr http://localhost:8080] [-secret $ADMIN_SECRET] <command> [args]
//
// Commands:
//
//	accounts                  list all accounts
//	get <username>            show one account
//	create <user> <pass> <role>  provision an account with an explicit role
//	unlock <username>         clear a lockout
//	remove <username>         delete an account
//	events                    dump the authentication trail
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

func main() {
	addr := flag.String("addr", envOr("AUTH_ADDR", "http://localhost:8080"), "auth service base URL")
	secret := flag.String("secret", os.Getenv("ADMIN_SECRET"), "admin shared secret")
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "missing command (accounts|get|create|unlock|remove|events)")
		os.Exit(2)
	}

	c := &client{
		base:   *addr,
		secret: *secret,
		http:   &http.Client{Timeout: 10 * time.Second},
	}

	var err error
	switch args[0] {
	case "accounts":
		err = c.do("GET", "/auth/v1/admin/accounts", nil)
	case "get":
		err = withArg(args, 1, func(u string) error {
			return c.do("GET", "/auth/v1/admin/accounts/"+u, nil)
		})
	case "create":
		if len(args) < 4 {
			err = fmt.Errorf("usage: create <username> <password> <role>")
			break
		}
		err = c.do("POST", "/auth/v1/admin/accounts", map[string]string{
			"username":         args[1],
			"password":         args[2],
			"confirm_password": args[2],
			"role":             args[3],
		})
	case "unlock":
		err = withArg(args, 1, func(u string) error {
			return c.do("POST", "/auth/v1/admin/accounts/"+u+"/unlock", nil)
		})
	case "remove":
		err = withArg(args, 1, func(u string) error {
			return c.do("DELETE", "/auth/v1/admin/accounts/"+u, nil)
		})
	case "events":
		err = c.do("GET", "/auth/v1/admin/events", nil)
	default:
		err = fmt.Errorf("unknown command %q", args[0])
	}

	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

type client struct {
	base   string
	secret string
	http   *http.Client
}

func (c *client) do(method, path string, body any) error {
	var buf io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		buf = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, c.base+path, buf)
	if err != nil {
		return err
	}
	req.Header.Set("X-Internal-Secret", c.secret)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	out, _ := io.ReadAll(resp.Body)
	if len(out) > 0 {
		fmt.Println(prettyJSON(out))
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("%s %s: %s", method, path, resp.Status)
	}
	return nil
}

func withArg(args []string, i int, fn func(string) error) error {
	if len(args) <= i {
		return fmt.Errorf("missing argument")
	}
	return fn(args[i])
}

func prettyJSON(b []byte) string {
	var out bytes.Buffer
	if err := json.Indent(&out, b, "", "  "); err != nil {
		return string(b)
	}
	return out.String()
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
