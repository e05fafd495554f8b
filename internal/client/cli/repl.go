package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface is the command surface the REPL dispatches to. App satisfies
// it; tests provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	isAdmin() bool
	flushNotice()

	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error

	Upload(ctx context.Context, path string) error
	Show(ctx context.Context) error
	Edit(ctx context.Context) error
	Compare(ctx context.Context) error
	Verify(ctx context.Context) error
	Export(ctx context.Context, path string) error
	Clear(ctx context.Context) error

	Read(ctx context.Context) error
	Stop(ctx context.Context) error

	Settings(ctx context.Context, args []string) error
	Admin(ctx context.Context, args []string) error
	Status(ctx context.Context) error
}

const (
	helpLoggedOut = "Comandos: register, login, help, exit"
	helpLoggedIn  = "Comandos: upload <ruta>, show, edit, compare, verify, read, stop, " +
		"settings [show|set <campo> <valor>|reset reader|reset text|font|save|test], " +
		"export <ruta.html>, clear, status, logout, help, exit"
	helpAdmin = "Comandos: admin [users|delete <id>], status, logout, help, exit"
)

// runREPL reads one command per line from in and dispatches it to a.
//
// Before each prompt any pending transient message is shown. The prompt
// carries statusFn's summary. Commands that need a session are refused
// while logged out; admin accounts only get the admin panel. Errors from
// handlers are printed and the loop carries on. The loop exits on EOF,
// "exit"/"quit" or when ctx is done.
func runREPL(ctx context.Context, a execIface, statusFn func() string, in *bufio.Reader) {
	for {
		if ctx.Err() != nil {
			return
		}
		a.flushNotice()
		printlnFn(fmt.Sprintf("accessdoc %s> ", statusFn()))

		line, err := in.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "exit", "quit":
			printlnFn("¡Hasta luego!")
			return
		case "help":
			switch {
			case a.isAdmin():
				printlnFn(helpAdmin)
			case a.isLoggedIn():
				printlnFn(helpLoggedIn)
			default:
				printlnFn(helpLoggedOut)
			}
			continue
		case "register":
			report(a.Register(ctx))
			continue
		case "login":
			report(a.Login(ctx))
			continue
		}

		if !a.isLoggedIn() {
			printlnFn("Inicia sesión primero (login o register)")
			continue
		}

		switch cmd {
		case "logout":
			report(a.Logout(ctx))
		case "status":
			report(a.Status(ctx))
		case "admin":
			report(a.Admin(ctx, args))
		default:
			if a.isAdmin() {
				printlnFn("Comando no disponible para administradores:", cmd)
				continue
			}
			dispatchUser(ctx, a, cmd, args)
		}
	}
}

func dispatchUser(ctx context.Context, a execIface, cmd string, args []string) {
	switch cmd {
	case "upload":
		report(a.Upload(ctx, strings.Join(args, " ")))
	case "show":
		report(a.Show(ctx))
	case "edit":
		report(a.Edit(ctx))
	case "compare":
		report(a.Compare(ctx))
	case "verify":
		report(a.Verify(ctx))
	case "export":
		report(a.Export(ctx, strings.Join(args, " ")))
	case "clear":
		report(a.Clear(ctx))
	case "read":
		report(a.Read(ctx))
	case "stop":
		report(a.Stop(ctx))
	case "settings":
		report(a.Settings(ctx, args))
	default:
		printlnFn("Comando desconocido:", cmd)
	}
}

func report(err error) {
	if err != nil {
		printlnFn(err.Error())
	}
}
