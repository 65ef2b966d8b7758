package commands

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/taskmaestro/maestro/internal/model"
)

type Type string

const (
	TypeAdd      Type = "add"
	TypeStatus   Type = "status"
	TypeDone     Type = "done"
	TypeDelete   Type = "delete"
	TypeShow     Type = "show"
	TypeWindow   Type = "window"
	TypeProject  Type = "project"
	TypeMember   Type = "member"
	TypeProgress Type = "progress"
	TypeRead     Type = "read"
	TypeSeed     Type = "seed"
	TypeReset    Type = "reset"
)

type ErrorCode string

const (
	ErrCodeEmptyInput      ErrorCode = "empty_input"
	ErrCodeUnknownCommand  ErrorCode = "unknown_command"
	ErrCodeInvalidArgument ErrorCode = "invalid_argument"
	ErrCodeHandlerMissing  ErrorCode = "handler_missing"
)

type CommandError struct {
	Code    ErrorCode
	Message string
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func invalid(format string, args ...any) error {
	return &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf(format, args...)}
}

type AddArgs struct {
	Title    string
	Priority model.Priority
	// Due is "Nd" (days from today) or YYYY-MM-DD; empty for no due date.
	Due     string
	Project string
	Tags    []string
}

// StatusArgs targets a task by its 1-based row in the task list or an id prefix.
type StatusArgs struct {
	Target string
	Status model.Status
}

type DeleteKind string

const (
	DeleteTask    DeleteKind = "task"
	DeleteProject DeleteKind = "project"
	DeleteMember  DeleteKind = "member"
)

type DeleteArgs struct {
	Kind   DeleteKind
	Target string
}

type ShowArgs struct {
	Subject string
	Filter  string
	Search  string
}

type WindowArgs struct {
	Days int
}

type ProjectArgs struct {
	Name  string
	Color string
	End   string
}

type MemberArgs struct {
	Name  string
	Email string
	Role  string
}

type ReadArgs struct {
	Target string
}

type Command struct {
	Type    Type
	Raw     string
	Add     *AddArgs
	Status  *StatusArgs
	Delete  *DeleteArgs
	Show    *ShowArgs
	Window  *WindowArgs
	Project *ProjectArgs
	Member  *MemberArgs
	Read    *ReadArgs
}

// Subjects lists the views "show" can switch to.
var Subjects = []string{"home", "tasks", "projects", "team", "analytics", "tips"}

func Parse(input string) (Command, error) {
	raw := strings.TrimSpace(input)
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}
	if strings.HasPrefix(raw, "/") {
		raw = strings.TrimSpace(strings.TrimPrefix(raw, "/"))
	}
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}

	parts := strings.Fields(raw)
	head := strings.ToLower(parts[0])
	args := parts[1:]

	switch Type(head) {
	case TypeAdd:
		return parseAdd(input, args)
	case TypeStatus:
		return parseStatus(input, args)
	case TypeDone:
		if len(args) != 1 {
			return Command{}, invalid("done requires one task")
		}
		return Command{Type: TypeStatus, Raw: input, Status: &StatusArgs{Target: args[0], Status: model.StatusCompleted}}, nil
	case TypeDelete:
		return parseDelete(input, args)
	case TypeShow:
		return parseShow(input, args)
	case TypeWindow:
		return parseWindow(input, args)
	case TypeProject:
		return parseProject(input, args)
	case TypeMember:
		return parseMember(input, args)
	case TypeRead:
		if len(args) != 1 {
			return Command{}, invalid("read requires one tip")
		}
		return Command{Type: TypeRead, Raw: input, Read: &ReadArgs{Target: args[0]}}, nil
	case TypeProgress, TypeSeed:
		return Command{Type: Type(head), Raw: input}, nil
	case TypeReset:
		if len(args) != 1 || strings.ToLower(args[0]) != "confirm" {
			return Command{}, invalid("reset deletes everything; type: reset confirm")
		}
		return Command{Type: TypeReset, Raw: input}, nil
	default:
		return Command{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unsupported command: %s", head)}
	}
}

// splitOptions separates key:value options from free words.
func splitOptions(args []string) ([]string, map[string][]string) {
	words := make([]string, 0, len(args))
	opts := make(map[string][]string)
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, ":")
		if ok && key != "" && value != "" && !strings.HasPrefix(value, "//") {
			k := strings.ToLower(key)
			opts[k] = append(opts[k], value)
			continue
		}
		words = append(words, arg)
	}
	return words, opts
}

func last(opts map[string][]string, key string) string {
	v := opts[key]
	if len(v) == 0 {
		return ""
	}
	return v[len(v)-1]
}

func parseAdd(raw string, args []string) (Command, error) {
	words, opts := splitOptions(args)
	title := strings.TrimSpace(strings.Join(words, " "))
	if title == "" {
		return Command{}, invalid("add requires a title")
	}
	out := AddArgs{Title: title, Priority: model.PriorityMedium, Tags: opts["tag"]}
	if p := last(opts, "p"); p != "" {
		prio, err := model.ParsePriority(p)
		if err != nil {
			return Command{}, invalid("unknown priority %q", p)
		}
		out.Priority = prio
	}
	if due := last(opts, "due"); due != "" {
		if _, err := ParseDue(due, time.Now(), time.UTC); err != nil {
			return Command{}, invalid("%v", err)
		}
		out.Due = due
	}
	out.Project = last(opts, "project")
	return Command{Type: TypeAdd, Raw: raw, Add: &out}, nil
}

func parseStatus(raw string, args []string) (Command, error) {
	if len(args) < 2 {
		return Command{}, invalid("status requires a task and a status")
	}
	status, err := model.ParseStatus(strings.Join(args[1:], " "))
	if err != nil {
		return Command{}, invalid("unknown status %q", strings.Join(args[1:], " "))
	}
	return Command{Type: TypeStatus, Raw: raw, Status: &StatusArgs{Target: args[0], Status: status}}, nil
}

func parseDelete(raw string, args []string) (Command, error) {
	if len(args) != 2 {
		return Command{}, invalid("delete requires a kind (task, project, member) and a target")
	}
	kind := DeleteKind(strings.ToLower(args[0]))
	switch kind {
	case DeleteTask, DeleteProject, DeleteMember:
	default:
		return Command{}, invalid("cannot delete %q", args[0])
	}
	return Command{Type: TypeDelete, Raw: raw, Delete: &DeleteArgs{Kind: kind, Target: args[1]}}, nil
}

func parseShow(raw string, args []string) (Command, error) {
	if len(args) == 0 {
		return Command{}, invalid("show requires a subject")
	}
	words, opts := splitOptions(args)
	if len(words) == 0 {
		return Command{}, invalid("show requires a subject")
	}
	subject := strings.ToLower(words[0])
	known := false
	for _, s := range Subjects {
		if s == subject {
			known = true
			break
		}
	}
	if !known {
		return Command{}, invalid("unknown view %q", words[0])
	}
	out := ShowArgs{Subject: subject, Search: strings.Join(opts["search"], " ")}
	if len(words) > 1 {
		out.Filter = strings.ToLower(strings.Join(words[1:], "_"))
	}
	return Command{Type: TypeShow, Raw: raw, Show: &out}, nil
}

func parseWindow(raw string, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, invalid("window requires a number of days")
	}
	days, err := strconv.Atoi(strings.TrimSuffix(strings.ToLower(args[0]), "d"))
	if err != nil || days <= 0 {
		return Command{}, invalid("window days must be a positive number, got %q", args[0])
	}
	return Command{Type: TypeWindow, Raw: raw, Window: &WindowArgs{Days: days}}, nil
}

func parseProject(raw string, args []string) (Command, error) {
	words, opts := splitOptions(args)
	name := strings.TrimSpace(strings.Join(words, " "))
	if name == "" {
		return Command{}, invalid("project requires a name")
	}
	out := ProjectArgs{Name: name, Color: last(opts, "color"), End: last(opts, "end")}
	if out.End != "" {
		if _, err := time.Parse(dateLayout, out.End); err != nil {
			return Command{}, invalid("end must be YYYY-MM-DD, got %q", out.End)
		}
	}
	return Command{Type: TypeProject, Raw: raw, Project: &out}, nil
}

func parseMember(raw string, args []string) (Command, error) {
	words, opts := splitOptions(args)
	name := strings.TrimSpace(strings.Join(words, " "))
	if name == "" {
		return Command{}, invalid("member requires a name")
	}
	return Command{Type: TypeMember, Raw: raw, Member: &MemberArgs{
		Name:  name,
		Email: last(opts, "email"),
		Role:  strings.ReplaceAll(last(opts, "role"), "_", " "),
	}}, nil
}

const dateLayout = "2006-01-02"

// ParseDue resolves "Nd" relative to now or an absolute YYYY-MM-DD, both at
// the end of that day in loc.
func ParseDue(raw string, now time.Time, loc *time.Location) (*time.Time, error) {
	raw = strings.ToLower(strings.TrimSpace(raw))
	if raw == "" {
		return nil, nil
	}
	var day time.Time
	switch {
	case raw == "today":
		day = now.In(loc)
	case raw == "tomorrow":
		day = now.In(loc).AddDate(0, 0, 1)
	case strings.HasSuffix(raw, "d"):
		n, err := strconv.Atoi(strings.TrimSuffix(raw, "d"))
		if err != nil || n < 0 {
			return nil, fmt.Errorf("due must be Nd or YYYY-MM-DD, got %q", raw)
		}
		day = now.In(loc).AddDate(0, 0, n)
	default:
		parsed, err := time.ParseInLocation(dateLayout, raw, loc)
		if err != nil {
			return nil, fmt.Errorf("due must be Nd or YYYY-MM-DD, got %q", raw)
		}
		day = parsed
	}
	y, m, d := day.Date()
	due := time.Date(y, m, d, 23, 59, 0, 0, loc)
	return &due, nil
}
