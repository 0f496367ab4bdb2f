package terminal

import (
	"errors"
	"strings"
	"testing"

	"product-viewer/internal/commands"
	"product-viewer/internal/logger"
)

type recorder struct {
	got []commands.Command
	err error
}

func (r *recorder) Dispatch(cmd commands.Command) error {
	r.got = append(r.got, cmd)
	return r.err
}

func lastLine(log *logger.Logger) string {
	lines := log.Lines()
	if len(lines) == 0 {
		return ""
	}
	return lines[len(lines)-1]
}

func TestSubmitDispatches(t *testing.T) {
	log := logger.NewWithPath("", nil)
	rec := &recorder{}
	c := New(log, commands.NewDefaultRegistry(), rec)

	c.Submit("color red")
	c.Submit("cmd texture --id texture2")
	c.Submit("   ")

	if len(rec.got) != 2 {
		t.Fatalf("dispatched %v", rec.got)
	}
	if rec.got[0] != (commands.SetColor{Value: "red"}) || rec.got[1] != (commands.SetTexture{ID: "texture2"}) {
		t.Errorf("dispatched %#v", rec.got)
	}
	if !strings.HasSuffix(lastLine(log), "ok: texture") {
		t.Errorf("last line = %q", lastLine(log))
	}
}

func TestSubmitErrorsAreLogged(t *testing.T) {
	log := logger.NewWithPath("", nil)
	rec := &recorder{err: errors.New("unknown color \"blurple\"")}
	c := New(log, commands.NewDefaultRegistry(), rec)

	c.Submit("fly --to moon")
	if !strings.Contains(lastLine(log), "error: ") {
		t.Errorf("unknown command not logged as error: %q", lastLine(log))
	}
	c.Submit("color blurple")
	if !strings.Contains(lastLine(log), "error: color: unknown color") {
		t.Errorf("dispatch error = %q", lastLine(log))
	}
}

func TestHelpAndToggle(t *testing.T) {
	log := logger.NewWithPath("", nil)
	c := New(log, commands.NewDefaultRegistry(), &recorder{})
	fps := false
	c.AddToggle("fps", func() bool { fps = !fps; return fps })

	c.Submit("toggle fps")
	if !fps || !strings.HasSuffix(lastLine(log), "fps on") {
		t.Errorf("toggle on: fps=%v line=%q", fps, lastLine(log))
	}
	c.Submit("toggle fps")
	if fps || !strings.HasSuffix(lastLine(log), "fps off") {
		t.Errorf("toggle off: fps=%v line=%q", fps, lastLine(log))
	}
	c.Submit("toggle warp")
	if !strings.Contains(lastLine(log), "unknown switch") {
		t.Errorf("unknown toggle = %q", lastLine(log))
	}

	c.Submit("help")
	if !strings.HasSuffix(lastLine(log), "toggles: fps") {
		t.Errorf("help = %q", lastLine(log))
	}
}
