package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/linemk/coffee-shop/internal/checkout"
	"github.com/linemk/coffee-shop/internal/domain/models"
)

var shopCmd = &cobra.Command{
	Use:   "shop",
	Short: "Interactive storefront: browse, fill a cart and check out",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := application.Catalog.Load(cmd.Context()); err != nil {
			return fmt.Errorf("failed to load the menu: %w", err)
		}
		return runShell(cmd)
	},
}

// shell holds the numbered listing the user last saw, so "add 2" means
// something stable between commands.
type shell struct {
	cmd     *cobra.Command
	out     io.Writer
	in      *bufio.Scanner
	listing []models.Product
}

func runShell(cmd *cobra.Command) error {
	sh := &shell{
		cmd: cmd,
		out: cmd.OutOrStdout(),
		in:  bufio.NewScanner(cmd.InOrStdin()),
	}

	fmt.Fprintln(sh.out, "Welcome to the coffee shop. Type 'help' for commands.")
	sh.showMenu()

	for {
		fmt.Fprint(sh.out, "> ")
		if !sh.in.Scan() {
			return sh.in.Err()
		}
		fields := strings.Fields(sh.in.Text())
		if len(fields) == 0 {
			continue
		}

		cmdName, rest := fields[0], fields[1:]
		if cmdName == "quit" || cmdName == "exit" {
			return nil
		}
		if err := sh.dispatch(cmdName, rest); err != nil {
			color.Red("%v", err)
		}
	}
}

func (sh *shell) dispatch(name string, args []string) error {
	switch name {
	case "help":
		sh.showHelp()
	case "menu":
		sh.showMenu()
	case "categories":
		sh.showCategories()
	case "filter":
		return sh.filter(args)
	case "add":
		return sh.add(args)
	case "cart":
		sh.showCart()
	case "qty":
		return sh.setQuantity(args)
	case "remove":
		return sh.remove(args)
	case "checkout":
		return sh.checkout()
	case "login":
		return sh.login(args)
	default:
		return fmt.Errorf("unknown command %q, type 'help'", name)
	}
	return nil
}

func (sh *shell) showHelp() {
	fmt.Fprint(sh.out, `  menu              show the menu (respects the active filter)
  categories        list categories
  filter <name>     show only one category, 'filter all' to reset
  add <n>           add menu item n to the cart
  cart              show the cart
  qty <n> <count>   change the quantity of cart line n
  remove <n>        drop cart line n
  checkout          place the order
  login <username>  sign in
  quit              leave
`)
}

func (sh *shell) showMenu() {
	sh.listing = application.Catalog.Filtered()
	if len(sh.listing) == 0 {
		fmt.Fprintln(sh.out, "No items")
		return
	}
	for i, p := range sh.listing {
		fmt.Fprintf(sh.out, "%3d. %-24s %-12s %s\n", i+1, p.Name, p.Category.Name, formatPrice(p.BasePrice))
	}
}

func (sh *shell) showCategories() {
	for _, c := range application.Catalog.Categories() {
		marker := "  "
		if c.ID == application.Catalog.SelectedCategory() {
			marker = "* "
		}
		fmt.Fprintf(sh.out, "%s%s\n", marker, c.Name)
	}
}

func (sh *shell) filter(args []string) error {
	if len(args) == 0 {
		return errors.New("usage: filter <category> (or 'filter all')")
	}
	name := strings.Join(args, " ")
	if strings.EqualFold(name, "all") {
		application.Catalog.SelectCategory("")
		sh.showMenu()
		return nil
	}
	id, ok := categoryIDByName(application.Catalog.Categories(), name)
	if !ok {
		return fmt.Errorf("unknown category %q", name)
	}
	application.Catalog.SelectCategory(id)
	sh.showMenu()
	return nil
}

func (sh *shell) add(args []string) error {
	n, err := sh.listingIndex(args)
	if err != nil {
		return err
	}
	product := sh.listing[n]
	application.Cart.Add(product)
	fmt.Fprintf(sh.out, "Added %s (%d items in cart)\n", product.Name, application.Cart.ItemCount())
	return nil
}

func (sh *shell) showCart() {
	items := application.Cart.Items()
	if len(items) == 0 {
		fmt.Fprintln(sh.out, "Cart is empty")
		return
	}
	for i, item := range items {
		fmt.Fprintf(sh.out, "%3d. %-24s x%-3d %s\n", i+1, item.Product.Name, item.Quantity, formatPrice(item.LineTotal()))
	}
	fmt.Fprintf(sh.out, "Subtotal: %s\n", formatPrice(application.Cart.Subtotal()))
}

func (sh *shell) setQuantity(args []string) error {
	if len(args) != 2 {
		return errors.New("usage: qty <line> <count>")
	}
	item, err := sh.cartLine(args[0])
	if err != nil {
		return err
	}
	q, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("not a quantity: %q", args[1])
	}
	application.Cart.SetQuantity(item.Product.ID, q)
	sh.showCart()
	return nil
}

func (sh *shell) remove(args []string) error {
	if len(args) != 1 {
		return errors.New("usage: remove <line>")
	}
	item, err := sh.cartLine(args[0])
	if err != nil {
		return err
	}
	application.Cart.Remove(item.Product.ID)
	sh.showCart()
	return nil
}

func (sh *shell) checkout() error {
	// an empty cart makes PlaceOrder a silent no-op, so remember whether
	// there was anything to order before the cart gets cleared
	had := application.Cart.Len() > 0

	err := application.Checkout.PlaceOrder(sh.cmd.Context(), application.Session, application.Cart)
	if errors.Is(err, checkout.ErrLoginRequired) {
		fmt.Fprintln(sh.out, "Sign in first: login <username>")
		return nil
	}
	if err != nil {
		return fmt.Errorf("order failed: %w", err)
	}
	if !had {
		fmt.Fprintln(sh.out, "Cart is empty")
		return nil
	}
	color.New(color.FgGreen).Fprintln(sh.out, "Order placed, thank you!")
	return nil
}

func (sh *shell) login(args []string) error {
	if len(args) != 1 {
		return errors.New("usage: login <username>")
	}
	fmt.Fprint(sh.out, "Password: ")
	if !sh.in.Scan() {
		return sh.in.Err()
	}
	password := strings.TrimSpace(sh.in.Text())
	if err := application.Session.Login(sh.cmd.Context(), args[0], password); err != nil {
		return fmt.Errorf("login failed: %w", err)
	}
	color.Green("Signed in as %s", application.Session.User().Username)
	return nil
}

// listingIndex resolves a 1-based menu number from the last listing shown.
func (sh *shell) listingIndex(args []string) (int, error) {
	if len(args) != 1 {
		return 0, errors.New("usage: add <menu number>")
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n < 1 || n > len(sh.listing) {
		return 0, fmt.Errorf("no menu item %q, run 'menu' to see numbers", args[0])
	}
	return n - 1, nil
}

// cartLine resolves a 1-based cart line number.
func (sh *shell) cartLine(arg string) (models.CartItem, error) {
	items := application.Cart.Items()
	n, err := strconv.Atoi(arg)
	if err != nil || n < 1 || n > len(items) {
		return models.CartItem{}, fmt.Errorf("no cart line %q, run 'cart' to see numbers", arg)
	}
	return items[n-1], nil
}

func init() {
	rootCmd.AddCommand(shopCmd)
}
