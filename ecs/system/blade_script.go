package system

import (
	"fmt"
	"log"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"

	"github.com/milk9111/relicblade/ecs"
	"github.com/milk9111/relicblade/ecs/component"
	"github.com/milk9111/relicblade/prefabs"
)

// BladeScriptSystem runs an optional tengo hook script on every blade
// mode change, for moddable feedback (sounds, screen shake) without
// touching Go. Script errors are logged, never fatal.
type BladeScriptSystem struct {
	scriptPath string
	compiled   *tengo.Compiled
	seen       int
	broken     bool
}

func NewBladeScriptSystem(scriptPath string) *BladeScriptSystem {
	return &BladeScriptSystem{scriptPath: scriptPath}
}

// Invalidate drops the compiled script so the next tick recompiles it;
// called by the reload system when the script file changes on disk.
func (s *BladeScriptSystem) Invalidate() {
	s.compiled = nil
	s.broken = false
}

func (s *BladeScriptSystem) Update(w *ecs.World) error {
	if s.scriptPath == "" || s.broken {
		return nil
	}

	for _, e := range w.Query(component.BladeComponent.ID()) {
		blade, ok := ecs.Get(w, e, component.BladeComponent)
		if !ok {
			continue
		}
		if len(blade.Trace) <= s.seen {
			// Trace is capacity-bounded; a shrink means old entries
			// rolled off, not that changes un-happened.
			if len(blade.Trace) < s.seen {
				s.seen = len(blade.Trace)
			}
			continue
		}
		pending := blade.Trace[s.seen:]
		s.seen = len(blade.Trace)

		for _, entry := range pending {
			if err := s.runHook(entry); err != nil {
				log.Printf("blade script: %v", err)
				s.broken = true
				return nil
			}
		}
	}
	return nil
}

func (s *BladeScriptSystem) runHook(entry component.TraceEntry) error {
	if s.compiled == nil {
		if err := s.compile(); err != nil {
			return err
		}
	}
	engine := buildScriptEngine(entry)
	if err := s.compiled.Set("__engine", engine); err != nil {
		return err
	}
	return s.compiled.Run()
}

func (s *BladeScriptSystem) compile() error {
	src, err := prefabs.LoadScript(s.scriptPath)
	if err != nil {
		return fmt.Errorf("load %s: %w", s.scriptPath, err)
	}
	script := tengo.NewScript(src)
	_ = script.Add("__engine", map[string]any{})
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return fmt.Errorf("compile %s: %w", s.scriptPath, err)
	}
	s.compiled = compiled
	return nil
}

func buildScriptEngine(entry component.TraceEntry) *tengo.ImmutableMap {
	values := map[string]tengo.Object{
		"from": &tengo.String{Value: component.ModeName(entry.From)},
		"to":   &tengo.String{Value: component.ModeName(entry.To)},
		"tick": &tengo.Int{Value: int64(entry.Tick)},
	}

	values["log"] = &tengo.UserFunction{Name: "log", Value: func(args ...tengo.Object) (tengo.Object, error) {
		parts := make([]string, 0, len(args))
		for _, a := range args {
			parts = append(parts, objectAsString(a))
		}
		log.Printf("blade script: %s", strings.Join(parts, " "))
		return tengo.UndefinedValue, nil
	}}

	// Sound and shake are routed to the audio/camera collaborators when
	// they exist; the demo build just logs them.
	values["play_sound"] = &tengo.UserFunction{Name: "play_sound", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) > 0 {
			log.Printf("blade script: sound %s", objectAsString(args[0]))
		}
		return tengo.UndefinedValue, nil
	}}

	values["shake"] = &tengo.UserFunction{Name: "shake", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return tengo.UndefinedValue, nil
	}}

	return &tengo.ImmutableMap{Value: values}
}

func objectAsString(o tengo.Object) string {
	if s, ok := tengo.ToString(o); ok {
		return s
	}
	return o.String()
}
