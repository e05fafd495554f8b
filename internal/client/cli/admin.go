package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/dmitrijs2005/accessdoc/internal/client/services"
)

const confirmDeleteUser = "¿Estás seguro de que quieres eliminar este usuario?"

// Admin is the user-management panel: "admin" or "admin users" lists
// accounts, "admin delete <id>" removes one.
func (a *App) Admin(ctx context.Context, args []string) error {
	if len(args) == 0 || args[0] == "users" {
		return a.listUsers(ctx)
	}
	if args[0] == "delete" && len(args) == 2 {
		id, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("id inválido: %q", args[1])
		}
		return a.deleteUser(ctx, id)
	}
	return errors.New("Uso: admin [users | delete <id>]")
}

func (a *App) listUsers(ctx context.Context) error {
	users, err := a.adminService.Users(ctx, a.session)
	if err != nil {
		if errors.Is(err, services.ErrNotAdmin) {
			printlnFn("Acceso restringido a administradores")
			return nil
		}
		return err
	}
	a.users = users
	a.printUsers()
	return nil
}

// deleteUser removes id after confirmation and drops it from the list
// already on screen.
func (a *App) deleteUser(ctx context.Context, id int) error {
	if !a.isAdmin() {
		printlnFn("Acceso restringido a administradores")
		return nil
	}
	ok, err := confirm(a.in, a.out, confirmDeleteUser)
	if err != nil || !ok {
		return err
	}
	if err := a.adminService.Delete(ctx, a.session, id); err != nil {
		return err
	}
	a.users = services.WithoutUser(a.users, id)
	printlnFn(fmt.Sprintf("Usuario %d eliminado", id))
	a.printUsers()
	return nil
}

func (a *App) printUsers() {
	if len(a.users) == 0 {
		printlnFn("(sin usuarios)")
		return
	}
	printlnFn(fmt.Sprintf("%-6s %-30s %s", "ID", "Usuario", "Admin"))
	for _, u := range a.users {
		admin := "no"
		if u.IsAdmin {
			admin = "sí"
		}
		name := u.Username
		// the own account cannot be deleted
		if a.session != nil && u.ID == a.session.UserID {
			name += " (tú)"
		}
		printlnFn(fmt.Sprintf("%-6d %-30s %s", u.ID, name, admin))
	}
}
