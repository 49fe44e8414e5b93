// Package console implements the interactive operator shell for managing
// universities. It talks to the same repository the HTTP API uses, so edits
// made here are visible to the web surface immediately.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/google/uuid"

	"github.com/RangiraDave/Test-copilot/internal/domain/entity"
	"github.com/RangiraDave/Test-copilot/internal/domain/repository"
	"github.com/RangiraDave/Test-copilot/internal/infrastructure/postgres"
)

const prompt = "university> "

const helpText = `commands:
  add "name" "location" "website" "status"     create a university
  update <id> "name" "location" "website" "status"  overwrite all fields
  delete <id>                                  remove a university
  get <id>                                     show one university
  list                                         show all universities
  help                                         this text
  quit                                         exit
status is "open" or "closed"; pass "" to keep website empty.`

// Console reads commands from In and writes results to Out until quit or EOF.
type Console struct {
	Repo repository.UniversityRepository
	In   io.Reader
	Out  io.Writer
}

func New(repo repository.UniversityRepository, in io.Reader, out io.Writer) *Console {
	return &Console{Repo: repo, In: in, Out: out}
}

// Run loops over input lines, executing one command per line. It returns when
// the operator quits or the input is exhausted.
func (c *Console) Run(ctx context.Context) error {
	sc := bufio.NewScanner(c.In)
	for {
		fmt.Fprint(c.Out, prompt)
		if !sc.Scan() {
			fmt.Fprintln(c.Out)
			return sc.Err()
		}
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		quit, err := c.Exec(ctx, line)
		if err != nil {
			fmt.Fprintf(c.Out, "error: %v\n", err)
		}
		if quit {
			return nil
		}
	}
}

// Exec runs a single command line. The bool result is true for quit.
func (c *Console) Exec(ctx context.Context, line string) (bool, error) {
	args, err := splitArgs(line)
	if err != nil {
		return false, err
	}
	if len(args) == 0 {
		return false, nil
	}
	switch args[0] {
	case "quit", "exit":
		return true, nil
	case "help":
		fmt.Fprintln(c.Out, helpText)
		return false, nil
	case "list":
		return false, c.list(ctx)
	case "get":
		if len(args) != 2 {
			return false, errors.New("usage: get <id>")
		}
		return false, c.get(ctx, args[1])
	case "delete":
		if len(args) != 2 {
			return false, errors.New("usage: delete <id>")
		}
		return false, c.delete(ctx, args[1])
	case "add":
		if len(args) != 5 {
			return false, errors.New(`usage: add "name" "location" "website" "status"`)
		}
		return false, c.add(ctx, args[1], args[2], args[3], args[4])
	case "update":
		if len(args) != 6 {
			return false, errors.New(`usage: update <id> "name" "location" "website" "status"`)
		}
		return false, c.update(ctx, args[1], args[2], args[3], args[4], args[5])
	default:
		return false, fmt.Errorf("unknown command %q (try help)", args[0])
	}
}

func (c *Console) add(ctx context.Context, name, location, website, status string) error {
	if status == "" {
		status = entity.StatusClosed
	}
	if !entity.ValidStatus(status) {
		return fmt.Errorf("status must be %q or %q", entity.StatusOpen, entity.StatusClosed)
	}
	if name == "" {
		return errors.New("name is required")
	}
	u := &entity.University{
		ID:       uuid.NewString(),
		Name:     name,
		Location: location,
		Website:  website,
		Status:   status,
	}
	if err := c.Repo.Create(ctx, u); err != nil {
		if _, ok := postgres.UniqueViolation(err); ok {
			return fmt.Errorf("a university named %q already exists", name)
		}
		return err
	}
	fmt.Fprintf(c.Out, "added %s\n", u.ID)
	return nil
}

func (c *Console) update(ctx context.Context, id, name, location, website, status string) error {
	if !entity.ValidStatus(status) {
		return fmt.Errorf("status must be %q or %q", entity.StatusOpen, entity.StatusClosed)
	}
	u, err := c.Repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, postgres.ErrNotFound) {
			return fmt.Errorf("no university with id %s", id)
		}
		return err
	}
	u.Name = name
	u.Location = location
	u.Website = website
	u.Status = status
	if err := c.Repo.Update(ctx, u); err != nil {
		if _, ok := postgres.UniqueViolation(err); ok {
			return fmt.Errorf("a university named %q already exists", name)
		}
		return err
	}
	fmt.Fprintf(c.Out, "updated %s\n", id)
	return nil
}

func (c *Console) delete(ctx context.Context, id string) error {
	if err := c.Repo.Delete(ctx, id); err != nil {
		if errors.Is(err, postgres.ErrNotFound) {
			return fmt.Errorf("no university with id %s", id)
		}
		return err
	}
	fmt.Fprintf(c.Out, "deleted %s\n", id)
	return nil
}

func (c *Console) get(ctx context.Context, id string) error {
	u, err := c.Repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, postgres.ErrNotFound) {
			return fmt.Errorf("no university with id %s", id)
		}
		return err
	}
	c.printTable([]*entity.University{u})
	return nil
}

func (c *Console) list(ctx context.Context) error {
	all, err := c.Repo.List(ctx)
	if err != nil {
		return err
	}
	if len(all) == 0 {
		fmt.Fprintln(c.Out, "no universities")
		return nil
	}
	c.printTable(all)
	return nil
}

func (c *Console) printTable(us []*entity.University) {
	tw := tabwriter.NewWriter(c.Out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tLOCATION\tWEBSITE\tSTATUS")
	for _, u := range us {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", u.ID, u.Name, u.Location, u.Website, u.Status)
	}
	_ = tw.Flush()
}

// splitArgs splits a command line into fields, honoring double quotes so
// names and locations may contain spaces. A quoted empty string yields an
// empty field.
func splitArgs(line string) ([]string, error) {
	var args []string
	var cur strings.Builder
	inQuote := false
	quoted := false
	for _, r := range line {
		switch {
		case r == '"':
			inQuote = !inQuote
			quoted = true
		case r == ' ' || r == '\t':
			if inQuote {
				cur.WriteRune(r)
				continue
			}
			if cur.Len() > 0 || quoted {
				args = append(args, cur.String())
				cur.Reset()
				quoted = false
			}
		default:
			cur.WriteRune(r)
		}
	}
	if inQuote {
		return nil, errors.New("unterminated quote")
	}
	if cur.Len() > 0 || quoted {
		args = append(args, cur.String())
	}
	return args, nil
}
