package testsupport

import (
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/rogpeppe/go-internal/testscript"

	"github.com/amonks/noteit/internal/fakeapi"
	"github.com/amonks/noteit/note"
)

var (
	buildOnce  sync.Once
	noteitPath string
	buildErr   error
)

// BuildNoteit builds the noteit binary once and returns its path.
func BuildNoteit(t testing.TB) string {
	t.Helper()

	buildOnce.Do(func() {
		moduleRoot, err := findModuleRoot()
		if err != nil {
			buildErr = err
			return
		}

		binDir, err := os.MkdirTemp("", "noteit-bin-")
		if err != nil {
			buildErr = err
			return
		}

		noteitPath = filepath.Join(binDir, "noteit")
		cmd := exec.Command("go", "build", "-o", noteitPath, "./cmd/noteit")
		cmd.Dir = moduleRoot
		output, err := cmd.CombinedOutput()
		if err != nil {
			buildErr = fmt.Errorf("build noteit: %w: %s", err, strings.TrimSpace(string(output)))
		}
	})

	if buildErr != nil {
		t.Fatalf("%v", buildErr)
	}

	return noteitPath
}

// StartFakeAPI serves a fresh fake notes API until cleanup runs.
func StartFakeAPI(cleanup func(func())) (*fakeapi.Server, string) {
	server := fakeapi.New(fakeapi.Options{})
	httpServer := httptest.NewServer(server)
	cleanup(httpServer.Close)
	return server, httpServer.URL
}

// SetupScriptEnv configures the binary, a private HOME, and a fake API
// server for one testscript run.
func SetupScriptEnv(t testing.TB, env *testscript.Env) error {
	t.Helper()

	env.Setenv("NOTEIT", BuildNoteit(t))

	homeDir := filepath.Join(env.WorkDir, "home")
	if err := EnsureHomeDirs(homeDir); err != nil {
		return err
	}
	env.Setenv("HOME", homeDir)
	env.Setenv("NOTEIT_STATE_DIR", "")
	env.Setenv("EDITOR", "")

	_, url := StartFakeAPI(env.Defer)
	env.Setenv("NOTEIT_API_URL", url)
	return nil
}

// CmdEnvSet stores the trimmed contents of a file in an env var.
func CmdEnvSet(ts *testscript.TestScript, neg bool, args []string) {
	if neg {
		ts.Fatalf("envset does not support negation")
	}
	if len(args) != 2 {
		ts.Fatalf("usage: envset VAR FILE")
	}

	value := strings.TrimSpace(ts.ReadFile(args[1]))
	ts.Setenv(args[0], value)
}

// CmdNoteID finds a note by title in `noteit list --json` output and stores
// its ID in an env var.
func CmdNoteID(ts *testscript.TestScript, neg bool, args []string) {
	if neg {
		ts.Fatalf("noteid does not support negation")
	}
	if len(args) != 3 {
		ts.Fatalf("usage: noteid FILE TITLE VAR")
	}

	var items []note.Note
	data := ts.ReadFile(args[0])
	if err := json.Unmarshal([]byte(data), &items); err != nil {
		ts.Fatalf("parse note list: %v", err)
	}

	title := args[1]
	for _, item := range items {
		if item.Title == title {
			ts.Setenv(args[2], strconv.Itoa(item.ID))
			return
		}
	}

	ts.Fatalf("note with title %q not found", title)
}

// CmdTodoID finds a todo by title in `noteit show --json` output and stores
// its ID in an env var.
func CmdTodoID(ts *testscript.TestScript, neg bool, args []string) {
	if neg {
		ts.Fatalf("todoid does not support negation")
	}
	if len(args) != 3 {
		ts.Fatalf("usage: todoid FILE TITLE VAR")
	}

	var item note.NoteWithTodos
	data := ts.ReadFile(args[0])
	if err := json.Unmarshal([]byte(data), &item); err != nil {
		ts.Fatalf("parse note: %v", err)
	}

	title := args[1]
	for _, todo := range item.Todos {
		if todo.Title == title {
			ts.Setenv(args[2], strconv.Itoa(todo.ID))
			return
		}
	}

	ts.Fatalf("todo with title %q not found", title)
}

func findModuleRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("could not find module root (go.mod)")
		}
		dir = parent
	}
}
