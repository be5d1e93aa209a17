package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"mercauca/internal/api"
	"mercauca/internal/domain"
	"mercauca/internal/session"
	"mercauca/internal/ui/commands"
)

// maxCodeAttempts bounds how often an interactive sign-up may retry the code
const maxCodeAttempts = 3

func newLoginCmd(opts *options) *cobra.Command {
	var user, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and keep the session for the storefront",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup(opts)
			if err != nil {
				return err
			}
			defer e.Close()

			if user, err = valueOr(opts.prompt, user, "Usuario", false, required("El usuario")); err != nil {
				return err
			}
			if password, err = valueOr(opts.prompt, password, "Contraseña", true, required("La contraseña")); err != nil {
				return err
			}
			creds := domain.Credentials{UserID: user, Password: password}
			if err := creds.Validate(); err != nil {
				return err
			}

			msg := e.executor().Login(creds)().(commands.LoggedInMsg)
			if msg.Err != nil {
				return errors.New(msg.Message)
			}
			fmt.Fprintln(opts.out, msg.Message)
			fmt.Fprintf(opts.out, "Hola, %s\n", msg.User.DisplayName())
			return nil
		},
	}
	cmd.Flags().StringVarP(&user, "user", "u", "", "user id")
	cmd.Flags().StringVarP(&password, "password", "p", "", "password (prompted when omitted)")
	return cmd
}

func newLogoutCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup(opts)
			if err != nil {
				return err
			}
			defer e.Close()

			msg := e.executor().Logout()().(commands.LoggedOutMsg)
			if msg.Err != nil {
				return msg.Err
			}
			fmt.Fprintln(opts.out, "Sesión cerrada")
			return nil
		},
	}
}

func newWhoamiCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in account",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup(opts)
			if err != nil {
				return err
			}
			defer e.Close()

			msg := e.executor().RestoreSession()().(commands.SessionRestoredMsg)
			var se *api.StatusError
			switch {
			case errors.Is(msg.Err, session.ErrNoSession):
				fmt.Fprintln(opts.out, "No has iniciado sesión")
				return nil
			case errors.Is(msg.Err, session.ErrExpired), errors.As(msg.Err, &se):
				fmt.Fprintln(opts.out, "Tu sesión ya no es válida, vuelve a iniciar sesión")
				return nil
			case msg.Err != nil:
				return fmt.Errorf("failed to verify session: %w", msg.Err)
			}

			fmt.Fprintf(opts.out, "%s (%s)\n", msg.User.DisplayName(), msg.UserID)
			if msg.User.Email != "" {
				fmt.Fprintln(opts.out, msg.User.Email)
			}
			if at, ok := msg.Session.ExpiresAt(); ok {
				fmt.Fprintf(opts.out, "La sesión vence el %s\n", at.Local().Format(time.DateTime))
			}
			return nil
		},
	}
}

func newRegisterCmd(opts *options) *cobra.Command {
	var reg domain.Registration
	var code string
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account, confirming the e-mail with a code",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup(opts)
			if err != nil {
				return err
			}
			defer e.Close()

			p := opts.prompt
			asks := []struct {
				field  *string
				label  string
				secret bool
			}{
				{&reg.Name, "Nombre completo", false},
				{&reg.UserID, "Usuario", false},
				{&reg.Email, "Correo", false},
				{&reg.Phone, "Teléfono", false},
				{&reg.Password, "Contraseña", true},
			}
			for _, a := range asks {
				if *a.field, err = valueOr(p, *a.field, a.label, a.secret, required(a.label)); err != nil {
					return err
				}
			}
			if err := reg.Validate(); err != nil {
				return err
			}

			exec := e.executor()
			sent := exec.SendCode(reg.Email, false)().(commands.CodeSentMsg)
			if sent.Err != nil {
				return errors.New(sent.Message)
			}
			fmt.Fprintf(opts.out, "Enviamos un código a %s\n", reg.Email)

			interactive := code == ""
			for attempt := 1; ; attempt++ {
				c, err := valueOr(p, code, "Código", false, domain.ValidateCode)
				if err != nil {
					return err
				}
				if err := domain.ValidateCode(c); err != nil {
					return err
				}
				msg := exec.VerifyAndRegister(reg, c)().(commands.RegisteredMsg)
				if msg.CodeErr != "" {
					if !interactive || attempt >= maxCodeAttempts {
						return errors.New(msg.CodeErr)
					}
					fmt.Fprintln(opts.out, msg.CodeErr)
					continue
				}
				if msg.Err != nil {
					return errors.New(msg.Message)
				}
				fmt.Fprintln(opts.out, msg.Message)
				return nil
			}
		},
	}
	f := cmd.Flags()
	f.StringVar(&reg.Name, "name", "", "full name")
	f.StringVarP(&reg.UserID, "user", "u", "", "user id")
	f.StringVar(&reg.Email, "email", "", "e-mail address")
	f.StringVar(&reg.Phone, "phone", "", "phone number")
	f.StringVarP(&reg.Password, "password", "p", "", "password, at least 6 characters")
	f.StringVar(&code, "code", "", "verification code received by e-mail")
	return cmd
}
