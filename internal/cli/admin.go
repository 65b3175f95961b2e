package cli

import (
	"bufio"
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/linemk/coffee-shop/internal/admin"
	"github.com/linemk/coffee-shop/internal/domain/models"
)

var adminCmd = &cobra.Command{
	Use:   "admin",
	Short: "Back-office: manage products, categories and users",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// root's PersistentPreRunE is not inherited once we define our own
		if err := rootCmd.PersistentPreRunE(cmd, args); err != nil {
			return err
		}
		if !application.Session.IsAdmin() {
			return errors.New("admin commands need an admin session, sign in first: coffeeshop login <username>")
		}
		return nil
	},
}

var skipConfirm bool

func deleteConfirm(cmd *cobra.Command, what string) func() bool {
	return func() bool {
		if skipConfirm {
			return true
		}
		in := bufio.NewReader(cmd.InOrStdin())
		return confirm(in, cmd.OutOrStdout(), fmt.Sprintf("Delete %s?", what))
	}
}

func newProductManager() *admin.ProductManager {
	return admin.NewProductManager(application.Logger, application.API, application.Session)
}

func newCategoryManager() *admin.CategoryManager {
	return admin.NewCategoryManager(application.Logger, application.API, application.Session)
}

func newUserManager() *admin.UserManager {
	return admin.NewUserManager(application.Logger, application.API, application.Session)
}

// --- products ---

var productCmd = &cobra.Command{
	Use:     "product",
	Aliases: []string{"products"},
	Short:   "Manage menu items",
}

var productListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all menu items with ids",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		mgr := newProductManager()
		if err := mgr.Refresh(cmd.Context()); err != nil {
			return err
		}
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tCATEGORY\tPRICE")
		for _, p := range mgr.Products() {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", p.ID, p.Name, p.Category.Name, formatPrice(p.BasePrice))
		}
		return w.Flush()
	},
}

var productForm admin.ProductForm
var productCategoryName string

func resolveCategoryID(mgr *admin.ProductManager) error {
	if productCategoryName == "" {
		return nil
	}
	id, ok := categoryIDByName(mgr.Categories(), productCategoryName)
	if !ok {
		return fmt.Errorf("unknown category %q", productCategoryName)
	}
	productForm.CategoryID = id
	return nil
}

var productCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Add a menu item",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		mgr := newProductManager()
		if err := mgr.Refresh(cmd.Context()); err != nil {
			return err
		}
		if err := resolveCategoryID(mgr); err != nil {
			return err
		}
		if err := mgr.Save(cmd.Context(), nil, productForm); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Created %q\n", productForm.Name)
		return nil
	},
}

var productUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Change a menu item; unset flags keep their current value",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		mgr := newProductManager()
		if err := mgr.Refresh(cmd.Context()); err != nil {
			return err
		}
		if err := mgr.OpenEdit(args[0]); err != nil {
			return err
		}
		existing := mgr.Editing()
		if existing == nil {
			return fmt.Errorf("no menu item with id %s", args[0])
		}

		form := admin.FormFromProduct(*existing)
		if cmd.Flags().Changed("name") {
			form.Name = productForm.Name
		}
		if cmd.Flags().Changed("description") {
			form.Description = productForm.Description
		}
		if cmd.Flags().Changed("price") {
			form.BasePrice = productForm.BasePrice
		}
		if err := resolveCategoryID(mgr); err != nil {
			return err
		}
		if cmd.Flags().Changed("category") {
			form.CategoryID = productForm.CategoryID
		}

		if err := mgr.Save(cmd.Context(), existing, form); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Updated %q\n", form.Name)
		return nil
	},
}

var productDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Remove a menu item",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		mgr := newProductManager()
		if err := mgr.Refresh(cmd.Context()); err != nil {
			return err
		}
		return mgr.Delete(cmd.Context(), args[0], deleteConfirm(cmd, "menu item "+args[0]))
	},
}

// --- categories ---

var categoryCmd = &cobra.Command{
	Use:     "category",
	Aliases: []string{"categories"},
	Short:   "Manage menu categories",
}

var categoryListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all categories with ids",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		mgr := newCategoryManager()
		if err := mgr.Refresh(cmd.Context()); err != nil {
			return err
		}
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tDESCRIPTION")
		for _, c := range mgr.Categories() {
			fmt.Fprintf(w, "%s\t%s\t%s\n", c.ID, c.Name, c.Description)
		}
		return w.Flush()
	},
}

var categoryForm admin.CategoryForm

var categoryCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Add a category",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		mgr := newCategoryManager()
		if err := mgr.Save(cmd.Context(), nil, categoryForm); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Created %q\n", categoryForm.Name)
		return nil
	},
}

var categoryUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Change a category; unset flags keep their current value",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		mgr := newCategoryManager()
		if err := mgr.Refresh(cmd.Context()); err != nil {
			return err
		}
		if err := mgr.OpenEdit(args[0]); err != nil {
			return err
		}
		existing := mgr.Editing()
		if existing == nil {
			return fmt.Errorf("no category with id %s", args[0])
		}

		form := admin.FormFromCategory(*existing)
		if cmd.Flags().Changed("name") {
			form.Name = categoryForm.Name
		}
		if cmd.Flags().Changed("description") {
			form.Description = categoryForm.Description
		}

		if err := mgr.Save(cmd.Context(), existing, form); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Updated %q\n", form.Name)
		return nil
	},
}

var categoryDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Remove a category (fails while menu items still use it)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		mgr := newCategoryManager()
		if err := mgr.Refresh(cmd.Context()); err != nil {
			return err
		}
		return mgr.Delete(cmd.Context(), args[0], deleteConfirm(cmd, "category "+args[0]))
	},
}

// --- users ---

var userCmd = &cobra.Command{
	Use:     "user",
	Aliases: []string{"users"},
	Short:   "Manage accounts",
}

var userListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all accounts with ids and roles",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		mgr := newUserManager()
		if err := mgr.Refresh(cmd.Context()); err != nil {
			return err
		}
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tUSERNAME\tEMAIL\tROLES")
		for _, u := range mgr.Users() {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", u.ID, u.Username, u.Email, roleNames(u.Roles))
		}
		return w.Flush()
	},
}

func roleNames(roles []models.Role) string {
	out := ""
	for i, r := range roles {
		if i > 0 {
			out += ","
		}
		out += r.Name
	}
	return out
}

var userForm admin.UserForm

var userCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Add an account",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		mgr := newUserManager()
		if err := mgr.Save(cmd.Context(), nil, userForm); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Created %q\n", userForm.Username)
		return nil
	},
}

var userUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Change an account's email or roles",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		mgr := newUserManager()
		if err := mgr.Refresh(cmd.Context()); err != nil {
			return err
		}
		if err := mgr.OpenEdit(args[0]); err != nil {
			return err
		}
		existing := mgr.Editing()
		if existing == nil {
			return fmt.Errorf("no account with id %s", args[0])
		}

		form := admin.FormFromUser(*existing)
		if cmd.Flags().Changed("email") {
			form.Email = userForm.Email
		}
		if cmd.Flags().Changed("role") {
			form.Roles = userForm.Roles
		}

		if err := mgr.Save(cmd.Context(), existing, form); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Updated %q\n", form.Username)
		return nil
	},
}

var userDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Remove an account",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		mgr := newUserManager()
		if err := mgr.Refresh(cmd.Context()); err != nil {
			return err
		}
		return mgr.Delete(cmd.Context(), args[0], deleteConfirm(cmd, "account "+args[0]))
	},
}

func init() {
	adminCmd.PersistentFlags().BoolVarP(&skipConfirm, "yes", "y", false, "skip delete confirmations")

	productCreateCmd.Flags().StringVar(&productForm.Name, "name", "", "item name")
	productCreateCmd.Flags().StringVar(&productForm.Description, "description", "", "item description")
	productCreateCmd.Flags().Float64Var(&productForm.BasePrice, "price", 0, "base price")
	productCreateCmd.Flags().StringVar(&productCategoryName, "category", "", "category name")
	productUpdateCmd.Flags().StringVar(&productForm.Name, "name", "", "item name")
	productUpdateCmd.Flags().StringVar(&productForm.Description, "description", "", "item description")
	productUpdateCmd.Flags().Float64Var(&productForm.BasePrice, "price", 0, "base price")
	productUpdateCmd.Flags().StringVar(&productCategoryName, "category", "", "category name")
	productCmd.AddCommand(productListCmd, productCreateCmd, productUpdateCmd, productDeleteCmd)

	categoryCreateCmd.Flags().StringVar(&categoryForm.Name, "name", "", "category name")
	categoryCreateCmd.Flags().StringVar(&categoryForm.Description, "description", "", "category description")
	categoryUpdateCmd.Flags().StringVar(&categoryForm.Name, "name", "", "category name")
	categoryUpdateCmd.Flags().StringVar(&categoryForm.Description, "description", "", "category description")
	categoryCmd.AddCommand(categoryListCmd, categoryCreateCmd, categoryUpdateCmd, categoryDeleteCmd)

	userCreateCmd.Flags().StringVar(&userForm.Username, "username", "", "account name")
	userCreateCmd.Flags().StringVar(&userForm.Email, "email", "", "account email")
	userCreateCmd.Flags().StringVar(&userForm.Password, "password", "", "account password")
	userCreateCmd.Flags().StringSliceVar(&userForm.Roles, "role", []string{"USER"}, "role, repeatable")
	userUpdateCmd.Flags().StringVar(&userForm.Email, "email", "", "account email")
	userUpdateCmd.Flags().StringSliceVar(&userForm.Roles, "role", nil, "role, repeatable")
	userCmd.AddCommand(userListCmd, userCreateCmd, userUpdateCmd, userDeleteCmd)

	adminCmd.AddCommand(productCmd, categoryCmd, userCmd)
	rootCmd.AddCommand(adminCmd)
}
