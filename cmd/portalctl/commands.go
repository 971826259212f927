package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/aussiebroadwan/acsportal/internal/portal/domain"
	"github.com/aussiebroadwan/acsportal/internal/portal/service"
	"github.com/aussiebroadwan/acsportal/pkg/portalsdk"
)

var errUsage = errors.New("invalid arguments, run portalctl -h")

// navigation decisions are made locally; the master password itself is
// only ever checked by the server.
var localPolicy = &service.Policy{}

func (c *cli) dispatch(ctx context.Context, args []string) error {
	cmd, rest := args[0], args[1:]
	switch cmd {
	case "login":
		return c.login(ctx, rest)
	case "logout":
		return c.logout(ctx)
	case "whoami":
		return c.whoami()
	case "open":
		if len(rest) != 1 {
			return errUsage
		}
		return c.open(ctx, rest[0])
	case "register":
		return c.register(ctx, rest)
	case "members":
		return c.members(ctx, rest)
	case "indicators":
		return c.indicators(ctx, rest)
	case "news":
		return c.news(ctx)
	case "card":
		return c.card(ctx, rest)
	case "keys":
		return c.keys(ctx, rest)
	case "config":
		return c.config(rest)
	default:
		return fmt.Errorf("unknown command %q", cmd)
	}
}

// authed returns a client carrying the held token.
func (c *cli) authed() *portalsdk.Client {
	return c.client.WithToken(c.holder.Token())
}

// checkToken drops a held session the server no longer accepts.
func (c *cli) checkToken(ctx context.Context, err error) error {
	if errors.Is(err, portalsdk.ErrInvalidToken) && c.holder.Current().IsAuthenticated() {
		c.logger.Debug("server rejected held token, reverting to guest")
		if lerr := c.holder.Logout(ctx); lerr != nil {
			return errors.Join(err, lerr)
		}
		return fmt.Errorf("session expired, log in again: %w", err)
	}
	return err
}

func identityOf(s *portalsdk.SessionResponse) domain.Identity {
	return domain.Identity{ID: s.User.ID, Name: s.User.Name, Role: domain.Role(s.User.Role)}
}

func (c *cli) login(ctx context.Context, args []string) error {
	if c.holder.Current().IsAuthenticated() {
		return fmt.Errorf("already logged in as %s, log out first", c.holder.Current().User.Name)
	}

	var cpf string
	var err error
	if len(args) > 0 {
		cpf = args[0]
	} else if cpf, err = c.prompt.line("CPF: "); err != nil {
		return err
	}
	password, err := c.prompt.secret("Senha: ")
	if err != nil {
		return err
	}

	resp, err := c.client.Login(ctx, cpf, password)
	if err != nil {
		return err
	}
	if err := c.holder.Login(ctx, identityOf(resp), resp.Token, time.Unix(resp.ExpiresAt, 0)); err != nil {
		return err
	}

	fmt.Fprintf(c.out, "Bem-vindo(a), %s\n", resp.User.Name)
	return nil
}

func (c *cli) logout(ctx context.Context) error {
	if c.holder.Token() != "" {
		if _, err := c.authed().Logout(ctx); err != nil && !errors.Is(err, portalsdk.ErrInvalidToken) {
			c.logger.Warn("server logout failed, clearing local session anyway", "err", err)
		}
	}
	if err := c.holder.Logout(ctx); err != nil {
		return err
	}
	fmt.Fprintln(c.out, "Sessão encerrada")
	return nil
}

func (c *cli) whoami() error {
	s := c.holder.Current()
	if !s.IsAuthenticated() {
		fmt.Fprintf(c.out, "%s (not logged in)\n", s.User.Name)
		return nil
	}
	fmt.Fprintf(c.out, "%s\t%s\t%s\n", s.User.ID, s.User.Name, s.Role())
	return nil
}

// open navigates to a tab, escalating with the master password when the
// policy asks for it.
func (c *cli) open(ctx context.Context, target string) error {
	decision, err := localPolicy.Navigate(c.holder.Current(), target)
	if err != nil {
		return fmt.Errorf("%s: %w", target, err)
	}

	if decision == service.Challenge {
		if err := c.escalate(ctx); err != nil {
			return err
		}
	}

	switch target {
	case service.TargetDashboard:
		if err := c.whoami(); err != nil {
			return err
		}
		return c.indicators(ctx, nil)
	case service.TargetMembers:
		return c.listMembers(ctx)
	case service.TargetIndicators:
		return c.indicators(ctx, nil)
	case service.TargetProfile:
		return c.profile(ctx)
	case service.TargetNews:
		return c.news(ctx)
	case service.TargetPayslip:
		u, err := c.client.PayslipURL(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintln(c.out, u)
	}
	return nil
}

func (c *cli) escalate(ctx context.Context) error {
	password, err := c.prompt.secret("Senha mestra: ")
	if err != nil {
		return err
	}
	otp, err := c.prompt.line("Código TOTP (enter se não houver): ")
	if err != nil {
		return err
	}

	resp, err := c.authed().Master(ctx, password, otp)
	if err != nil {
		return c.checkToken(ctx, err)
	}
	return c.holder.Escalate(ctx, resp.Token, time.Unix(resp.ExpiresAt, 0))
}

func (c *cli) register(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("register", flag.ContinueOnError)
	var req portalsdk.RegisterRequest
	fs.StringVar(&req.FullName, "name", "", "full name")
	fs.StringVar(&req.CPF, "cpf", "", "CPF")
	fs.StringVar(&req.CNS, "cns", "", "CNS card number")
	fs.StringVar(&req.BirthDate, "birth", "", "birth date YYYY-MM-DD")
	fs.StringVar(&req.Gender, "gender", "", "Masculino, Feminino or Outro")
	fs.StringVar(&req.Workplace, "workplace", "", "health unit")
	fs.StringVar(&req.Team, "team", "", "team")
	fs.StringVar(&req.MicroArea, "micro-area", "", "micro area")
	fs.StringVar(&req.AreaType, "area", "Urbana", "Rural or Urbana")
	if err := fs.Parse(args); err != nil {
		return err
	}

	m, err := c.client.Register(ctx, req)
	if err != nil {
		var apiErr *portalsdk.APIError
		if errors.As(err, &apiErr) {
			for field, msg := range apiErr.Details {
				fmt.Fprintf(c.out, "  %s: %s\n", field, msg)
			}
		}
		return err
	}

	fmt.Fprintf(c.out, "Cadastro enviado (%s). Aguarde a aprovação da coordenação; senha inicial: %s\n", m.ID, domain.DefaultPassword)
	return nil
}

func (c *cli) members(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errUsage
	}

	cl := c.authed()
	var err error
	switch sub, rest := args[0], args[1:]; {
	case sub == "list":
		return c.listMembers(ctx)
	case sub == "delete" && len(rest) == 1:
		if err = cl.DeleteMember(ctx, rest[0]); err == nil {
			fmt.Fprintln(c.out, "Membro removido")
		}
	case sub == "role" && len(rest) == 2:
		var m *portalsdk.Member
		if m, err = cl.SetRole(ctx, rest[0], strings.ToUpper(rest[1])); err == nil {
			fmt.Fprintf(c.out, "%s agora é %s\n", m.FullName, m.Role)
		}
	case sub == "status" && len(rest) == 2:
		var m *portalsdk.Member
		if m, err = cl.SetStatus(ctx, rest[0], rest[1]); err == nil {
			fmt.Fprintf(c.out, "%s: %s\n", m.FullName, m.Status)
		}
	case sub == "password" && len(rest) == 1:
		var pw string
		if pw, err = c.prompt.secret("Nova senha: "); err != nil {
			return err
		}
		if err = cl.SetPassword(ctx, rest[0], pw); err == nil {
			fmt.Fprintln(c.out, "Senha alterada")
		}
	default:
		return errUsage
	}
	return c.checkToken(ctx, err)
}

func (c *cli) listMembers(ctx context.Context) error {
	ms, err := c.authed().ListMembers(ctx)
	if err != nil {
		return c.checkToken(ctx, err)
	}

	tw := tabwriter.NewWriter(c.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNOME\tCPF\tEQUIPE\tSTATUS\tPERFIL")
	for _, m := range ms {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n", m.ID, m.FullName, domain.FormatCPF(m.CPF), m.Team, m.Status, m.Role)
	}
	return tw.Flush()
}

func (c *cli) profile(ctx context.Context) error {
	m, err := c.authed().Me(ctx)
	if err != nil {
		return c.checkToken(ctx, err)
	}
	fmt.Fprintf(c.out, "%s\nCPF: %s\nUnidade: %s\nEquipe: %s / %s\nStatus: %s\n",
		m.FullName, domain.FormatCPF(m.CPF), m.Workplace, m.Team, m.MicroArea, m.Status)
	return nil
}

func (c *cli) indicators(ctx context.Context, args []string) error {
	if len(args) > 0 {
		return c.updateIndicator(ctx, args)
	}

	ind, err := c.client.Indicators(ctx)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(c.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "APS\tINDICADOR\tMUNICÍPIO\tSTATUS")
	for _, a := range ind.APS {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", a.Code, a.Title, a.CityValue, a.Status)
	}
	fmt.Fprintln(tw, "\nBUCAL\tINDICADOR\t\tSTATUS")
	for _, d := range ind.Dental {
		fmt.Fprintf(tw, "%s\t%s\t\t%s\n", d.Code, d.Title, d.Status)
	}
	return tw.Flush()
}

func (c *cli) updateIndicator(ctx context.Context, args []string) error {
	if len(args) < 3 {
		return errUsage
	}
	kind, code, status := args[0], args[1], args[2]

	var err error
	switch kind {
	case "aps":
		upd := portalsdk.APSIndicator{Code: code, Status: status}
		if len(args) > 3 {
			upd.CityValue = args[3]
		}
		_, err = c.authed().UpdateAPS(ctx, upd)
	case "dental":
		_, err = c.authed().UpdateDental(ctx, portalsdk.DentalIndicator{Code: code, Status: status})
	default:
		return errUsage
	}
	if err != nil {
		return c.checkToken(ctx, err)
	}
	fmt.Fprintf(c.out, "%s atualizado\n", code)
	return nil
}

func (c *cli) news(ctx context.Context) error {
	items, err := c.client.News(ctx)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		fmt.Fprintln(c.out, "Nenhuma notícia disponível no momento")
		return nil
	}
	for _, it := range items {
		fmt.Fprintf(c.out, "%s  %s\n  %s\n  %s\n\n", it.Date, it.Title, it.Summary, it.URL)
	}
	return nil
}

func (c *cli) card(ctx context.Context, args []string) error {
	id := c.holder.Current().ID()
	if len(args) > 0 {
		id = args[0]
	}

	card, err := c.authed().Card(ctx, id)
	if err != nil {
		return c.checkToken(ctx, err)
	}

	fmt.Fprintf(c.out, "%s\n", card.PrintName)
	fmt.Fprintf(c.out, "  %s\n  %s\n", card.FullName, card.RoleLabel)
	fmt.Fprintf(c.out, "  CPF: %s   CNS: %s\n", card.CPF, card.CNS)
	fmt.Fprintf(c.out, "  Nascimento: %s\n", card.BirthDate)
	fmt.Fprintf(c.out, "  %s\n  Equipe/Micro: %s   %s\n  Status: %s\n", card.Workplace, card.TeamArea, card.Zone, card.Status)
	return nil
}

// keys manages signing keys. The server only accepts the master session, so
// a member session is escalated first.
func (c *cli) keys(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errUsage
	}
	if !c.holder.Current().IsSyntheticAdmin() {
		if err := c.escalate(ctx); err != nil {
			return err
		}
	}

	cl := c.authed()
	switch args[0] {
	case "list":
		keys, err := cl.ListKeys(ctx)
		if err != nil {
			return c.checkToken(ctx, err)
		}
		tw := tabwriter.NewWriter(c.out, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "KID\tATIVA\tCRIADA\tAPOSENTADA\tEXPIRA")
		for _, k := range keys {
			fmt.Fprintf(tw, "%s\t%t\t%s\t%s\t%s\n", k.Kid, k.Active, k.CreatedAt, k.RetiredAt, k.ExpiresAt)
		}
		return tw.Flush()

	case "rotate":
		fs := flag.NewFlagSet("keys rotate", flag.ContinueOnError)
		retire := fs.Bool("retire", false, "retire the current keys")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		res, err := cl.RotateKeys(ctx, *retire)
		if err != nil {
			return c.checkToken(ctx, err)
		}
		fmt.Fprintf(c.out, "nova chave %s (%d ativas, %d aposentadas)\n", res.NewKey.Kid, res.ActiveKeys, len(res.Retired))
		return nil

	case "retire":
		if len(args) != 2 {
			return errUsage
		}
		if err := cl.RetireKey(ctx, args[1]); err != nil {
			return c.checkToken(ctx, err)
		}
		fmt.Fprintf(c.out, "chave %s aposentada\n", args[1])
		return nil
	}
	return errUsage
}

func (c *cli) config(args []string) error {
	if len(args) != 2 || args[0] != "set-server" {
		return errUsage
	}
	c.cfg.ServerURL = args[1]
	if err := saveConfig(c.configPath, c.cfg); err != nil {
		return err
	}
	fmt.Fprintf(c.out, "server_url = %s\n", args[1])
	return nil
}
