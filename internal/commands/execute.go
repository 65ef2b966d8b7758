package commands

import "fmt"

type Result struct {
	Message string
}

type Handlers struct {
	Add      func(AddArgs) (Result, error)
	Status   func(StatusArgs) (Result, error)
	Delete   func(DeleteArgs) (Result, error)
	Show     func(ShowArgs) (Result, error)
	Window   func(WindowArgs) (Result, error)
	Project  func(ProjectArgs) (Result, error)
	Member   func(MemberArgs) (Result, error)
	Progress func() (Result, error)
	Read     func(ReadArgs) (Result, error)
	Seed     func() (Result, error)
	Reset    func() (Result, error)
}

func missing(name string) error {
	return &CommandError{Code: ErrCodeHandlerMissing, Message: name + " handler not configured"}
}

func Execute(cmd Command, handlers Handlers) (Result, error) {
	switch cmd.Type {
	case TypeAdd:
		if handlers.Add == nil {
			return Result{}, missing("add")
		}
		return handlers.Add(*cmd.Add)
	case TypeStatus:
		if handlers.Status == nil {
			return Result{}, missing("status")
		}
		return handlers.Status(*cmd.Status)
	case TypeDelete:
		if handlers.Delete == nil {
			return Result{}, missing("delete")
		}
		return handlers.Delete(*cmd.Delete)
	case TypeShow:
		if handlers.Show == nil {
			return Result{}, missing("show")
		}
		return handlers.Show(*cmd.Show)
	case TypeWindow:
		if handlers.Window == nil {
			return Result{}, missing("window")
		}
		return handlers.Window(*cmd.Window)
	case TypeProject:
		if handlers.Project == nil {
			return Result{}, missing("project")
		}
		return handlers.Project(*cmd.Project)
	case TypeMember:
		if handlers.Member == nil {
			return Result{}, missing("member")
		}
		return handlers.Member(*cmd.Member)
	case TypeProgress:
		if handlers.Progress == nil {
			return Result{}, missing("progress")
		}
		return handlers.Progress()
	case TypeRead:
		if handlers.Read == nil {
			return Result{}, missing("read")
		}
		return handlers.Read(*cmd.Read)
	case TypeSeed:
		if handlers.Seed == nil {
			return Result{}, missing("seed")
		}
		return handlers.Seed()
	case TypeReset:
		if handlers.Reset == nil {
			return Result{}, missing("reset")
		}
		return handlers.Reset()
	default:
		return Result{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unknown command type: %s", cmd.Type)}
	}
}
