package commands

import (
	"errors"
	"testing"
	"time"

	"github.com/taskmaestro/maestro/internal/model"
)

func TestParseSupportedCommands(t *testing.T) {
	cases := []struct {
		in       string
		typeWant Type
	}{
		{"/add pay rent due:3d", TypeAdd},
		{"status 2 in progress", TypeStatus},
		{"done 1", TypeStatus},
		{"delete task 3", TypeDelete},
		{"show tasks urgent", TypeShow},
		{"window 14", TypeWindow},
		{"project Website Relaunch color:#FF9800", TypeProject},
		{"member Ada Lovelace role:Engineer", TypeMember},
		{"progress", TypeProgress},
		{"read 2", TypeRead},
		{"/seed", TypeSeed},
		{"reset confirm", TypeReset},
	}

	for _, tc := range cases {
		cmd, err := Parse(tc.in)
		if err != nil {
			t.Fatalf("parse %q failed: %v", tc.in, err)
		}
		if cmd.Type != tc.typeWant {
			t.Fatalf("parse %q type = %s, want %s", tc.in, cmd.Type, tc.typeWant)
		}
	}
}

func TestParseAddOptions(t *testing.T) {
	cmd, err := Parse("/add write release notes p:urgent due:2026-11-02 project:mobile tag:docs tag:release see http://example.com")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	a := cmd.Add
	if a.Title != "write release notes see http://example.com" {
		t.Fatalf("unexpected title: %q", a.Title)
	}
	if a.Priority != model.PriorityUrgent || a.Due != "2026-11-02" || a.Project != "mobile" {
		t.Fatalf("unexpected options: %+v", a)
	}
	if len(a.Tags) != 2 || a.Tags[0] != "docs" || a.Tags[1] != "release" {
		t.Fatalf("unexpected tags: %v", a.Tags)
	}
}

func TestParseStatusAndDone(t *testing.T) {
	cmd, err := Parse("status ab12 blocked")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if cmd.Status.Target != "ab12" || cmd.Status.Status != model.StatusBlocked {
		t.Fatalf("unexpected status args: %+v", cmd.Status)
	}

	cmd, err = Parse("done 4")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if cmd.Status.Status != model.StatusCompleted || cmd.Status.Target != "4" {
		t.Fatalf("done should complete the task: %+v", cmd.Status)
	}
}

func TestParseShowFilterAndSearch(t *testing.T) {
	cmd, err := Parse("show tasks in progress search:login")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if cmd.Show.Subject != "tasks" || cmd.Show.Filter != "in_progress" || cmd.Show.Search != "login" {
		t.Fatalf("unexpected show args: %+v", cmd.Show)
	}
}

func TestParseInvalidArguments(t *testing.T) {
	inputs := []string{
		"add",
		"add p:high",
		"add thing p:whenever",
		"add thing due:someday",
		"status 1",
		"status 1 archived",
		"delete tip 1",
		"show nowhere",
		"window 0",
		"window week",
		"project end:2026-01-01",
		"project Site end:soon",
		"reset",
		"reset now",
	}
	for _, in := range inputs {
		_, err := Parse(in)
		var ce *CommandError
		if !errors.As(err, &ce) || ce.Code != ErrCodeInvalidArgument {
			t.Fatalf("parse %q: expected invalid argument, got %v", in, err)
		}
	}
}

func TestParseUnknownCommand(t *testing.T) {
	_, err := Parse("/unknown do x")
	if err == nil {
		t.Fatal("expected error")
	}
	var ce *CommandError
	if !errors.As(err, &ce) || ce.Code != ErrCodeUnknownCommand {
		t.Fatalf("expected unknown command error, got %v", err)
	}
}

func TestParseEmpty(t *testing.T) {
	for _, in := range []string{"", "   ", "/"} {
		_, err := Parse(in)
		var ce *CommandError
		if !errors.As(err, &ce) || ce.Code != ErrCodeEmptyInput {
			t.Fatalf("parse %q: expected empty input error, got %v", in, err)
		}
	}
}

func TestParseDue(t *testing.T) {
	loc := time.UTC
	now := time.Date(2026, 10, 19, 9, 30, 0, 0, loc)

	got, err := ParseDue("3d", now, loc)
	if err != nil {
		t.Fatalf("parse due: %v", err)
	}
	if want := time.Date(2026, 10, 22, 23, 59, 0, 0, loc); !got.Equal(want) {
		t.Fatalf("due = %v, want %v", got, want)
	}

	got, err = ParseDue("2026-12-01", now, loc)
	if err != nil {
		t.Fatalf("parse due: %v", err)
	}
	if want := time.Date(2026, 12, 1, 23, 59, 0, 0, loc); !got.Equal(want) {
		t.Fatalf("due = %v, want %v", got, want)
	}

	if got, err := ParseDue("", now, loc); err != nil || got != nil {
		t.Fatalf("empty due should be nil, got %v (%v)", got, err)
	}
	if _, err := ParseDue("-2d", now, loc); err == nil {
		t.Fatal("expected error for negative days")
	}
}

func TestExecuteDispatch(t *testing.T) {
	cmd, err := Parse("/add write docs")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	called := false
	res, err := Execute(cmd, Handlers{
		Add: func(a AddArgs) (Result, error) {
			called = true
			if a.Title != "write docs" || a.Priority != model.PriorityMedium {
				t.Fatalf("unexpected args: %+v", a)
			}
			return Result{Message: "ok"}, nil
		},
	})
	if err != nil {
		t.Fatalf("execute failed: %v", err)
	}
	if !called || res.Message != "ok" {
		t.Fatalf("dispatch failed, called=%v res=%+v", called, res)
	}
}

func TestExecuteNoArgCommands(t *testing.T) {
	var got []string
	handlers := Handlers{
		Progress: func() (Result, error) { got = append(got, "progress"); return Result{}, nil },
		Seed:     func() (Result, error) { got = append(got, "seed"); return Result{}, nil },
		Reset:    func() (Result, error) { got = append(got, "reset"); return Result{}, nil },
	}
	for _, in := range []string{"progress", "seed", "reset confirm"} {
		cmd, err := Parse(in)
		if err != nil {
			t.Fatalf("parse %q: %v", in, err)
		}
		if _, err := Execute(cmd, handlers); err != nil {
			t.Fatalf("execute %q: %v", in, err)
		}
	}
	if len(got) != 3 || got[0] != "progress" || got[2] != "reset" {
		t.Fatalf("unexpected dispatch order: %v", got)
	}
}

func TestExecuteMissingHandler(t *testing.T) {
	cmd, err := Parse("show tasks")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	_, err = Execute(cmd, Handlers{})
	if err == nil {
		t.Fatal("expected error")
	}
	var ce *CommandError
	if !errors.As(err, &ce) || ce.Code != ErrCodeHandlerMissing {
		t.Fatalf("expected missing handler error, got %v", err)
	}
}
