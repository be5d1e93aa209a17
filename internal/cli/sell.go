package cli

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"mercauca/internal/domain"
	"mercauca/internal/session"
	"mercauca/internal/ui/commands"
)

// uploadTimeout leaves room for large images on slow links
const uploadTimeout = 2 * time.Minute

func newSellCmd(opts *options) *cobra.Command {
	var form domain.ProductForm
	cmd := &cobra.Command{
		Use:   "sell",
		Short: "Publish a product listing with its image",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup(opts)
			if err != nil {
				return err
			}
			defer e.Close()

			sess, err := e.store.Load()
			if errors.Is(err, session.ErrNoSession) || errors.Is(err, session.ErrExpired) {
				return errors.New("inicia sesión primero con `mercauca login`")
			}
			if err != nil {
				return err
			}
			form.UserID = sess.UserID()

			p := opts.prompt
			if form.Title, err = valueOr(p, form.Title, "Título", false, required("El título")); err != nil {
				return err
			}
			if form.Price, err = valueOr(p, form.Price, "Precio", false, required("El precio")); err != nil {
				return err
			}
			if form.ImagePath, err = valueOr(p, form.ImagePath, "Imagen (ruta)", false, required("La imagen")); err != nil {
				return err
			}
			if form.ConditionID == "" {
				if form.ConditionID, err = choose(p, "Condición", domain.Conditions); err != nil {
					return err
				}
			}
			if form.CategoryID == "" {
				if form.CategoryID, err = choose(p, "Categoría", domain.Categories); err != nil {
					return err
				}
			}
			if _, ok := domain.FindOption(domain.Conditions, form.ConditionID); !ok {
				return fmt.Errorf("condición desconocida: %s", form.ConditionID)
			}
			if _, ok := domain.FindOption(domain.Categories, form.CategoryID); !ok {
				return fmt.Errorf("categoría desconocida: %s", form.CategoryID)
			}
			if err := form.Validate(); err != nil {
				return err
			}

			cc := e.commandContext()
			cc.Timeout = max(cc.Timeout, uploadTimeout)
			cc.WrapUpload = func(r io.Reader, size int64) io.Reader {
				bar := progressbar.NewOptions64(size,
					progressbar.OptionSetWriter(opts.out),
					progressbar.OptionSetDescription("Subiendo imagen"),
					progressbar.OptionShowBytes(true),
					progressbar.OptionSetWidth(30),
					progressbar.OptionClearOnFinish(),
				)
				return io.TeeReader(r, bar)
			}

			msg := commands.NewExecutor(cc).CreateProduct(sess.Token, form)().(commands.ProductCreatedMsg)
			if msg.Err != nil {
				return fmt.Errorf("%s: %w", msg.Message, msg.Err)
			}
			fmt.Fprintln(opts.out, msg.Message)
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&form.Title, "title", "", "listing title")
	f.StringVar(&form.Description, "description", "", "listing description")
	f.StringVar(&form.Brand, "brand", "", "brand")
	f.StringVar(&form.Price, "price", "", "price")
	f.StringVar(&form.ImagePath, "image", "", "path to the product image")
	f.StringVar(&form.ConditionID, "condition", "", "condition id, e.g. C001")
	f.StringVar(&form.CategoryID, "category", "", "category id, e.g. CAT001")
	return cmd
}

func choose(p prompter, label string, options []domain.Option) (string, error) {
	items := make([]string, len(options))
	for i, o := range options {
		items[i] = o.String()
	}
	i, err := p.Choose(label, items)
	if err != nil {
		return "", err
	}
	return options[i].ID, nil
}
