package wordcount

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/docedit/internal/logging"
)

// LuaFunction is the global a policy script must define. It receives the
// element text and returns the word count.
const LuaFunction = "count_words"

// DefaultLuaTimeout bounds a single count_words call.
const DefaultLuaTimeout = 2 * time.Second

// Errors for Lua policies.
var (
	// ErrNoCountFunction indicates the script did not define count_words.
	ErrNoCountFunction = errors.New("script does not define " + LuaFunction)

	// ErrPolicyClosed is returned after Close.
	ErrPolicyClosed = errors.New("lua policy is closed")
)

// LuaPolicy counts words with a user-supplied Lua script.
//
// The script runs in a state with only the base, table, string and math
// libraries; io, os and module loading are unavailable. When a call fails
// the error is logged and the fallback policy answers instead.
//
// gopher-lua states are single-threaded; calls are serialised.
type LuaPolicy struct {
	mu       sync.Mutex
	L        *lua.LState
	fallback Policy
	timeout  time.Duration
	logger   *logging.Logger
	closed   bool
}

// LuaOption configures a LuaPolicy.
type LuaOption func(*LuaPolicy)

// WithFallback sets the policy used when the script fails.
func WithFallback(p Policy) LuaOption {
	return func(lp *LuaPolicy) {
		lp.fallback = p
	}
}

// WithTimeout bounds each script call.
func WithTimeout(d time.Duration) LuaOption {
	return func(lp *LuaPolicy) {
		if d > 0 {
			lp.timeout = d
		}
	}
}

// WithLogger sets the logger used to report script failures.
func WithLogger(l *logging.Logger) LuaOption {
	return func(lp *LuaPolicy) {
		lp.logger = l
	}
}

// NewLuaPolicy compiles source and checks that it defines count_words.
func NewLuaPolicy(source string, opts ...LuaOption) (*LuaPolicy, error) {
	p := &LuaPolicy{
		fallback: Whitespace{},
		timeout:  DefaultLuaTimeout,
		logger:   logging.Nop(),
	}
	for _, opt := range opts {
		opt(p)
	}

	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	openSafeLibraries(L)

	if err := L.DoString(source); err != nil {
		L.Close()
		return nil, fmt.Errorf("load word count script: %w", err)
	}
	if fn := L.GetGlobal(LuaFunction); fn.Type() != lua.LTFunction {
		L.Close()
		return nil, ErrNoCountFunction
	}

	p.L = L
	return p, nil
}

// LoadLuaPolicy reads a policy script from path.
func LoadLuaPolicy(path string, opts ...LuaOption) (*LuaPolicy, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read word count script: %w", err)
	}
	return NewLuaPolicy(string(src), opts...)
}

// openSafeLibraries opens only the libraries a counting script needs.
func openSafeLibraries(L *lua.LState) {
	for _, lib := range []struct {
		name string
		fn   lua.LGFunction
	}{
		{lua.BaseLibName, lua.OpenBase},
		{lua.TabLibName, lua.OpenTable},
		{lua.StringLibName, lua.OpenString},
		{lua.MathLibName, lua.OpenMath},
	} {
		L.Push(L.NewFunction(lib.fn))
		L.Push(lua.LString(lib.name))
		L.Call(1, 0)
	}

	for _, name := range []string{"dofile", "loadfile", "load", "loadstring", "require"} {
		L.SetGlobal(name, lua.LNil)
	}
}

// Count calls the script and returns its result or an error.
func (p *LuaPolicy) Count(text string) (n int, err error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return 0, ErrPolicyClosed
	}

	ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
	defer cancel()
	p.L.SetContext(ctx)
	defer p.L.RemoveContext()

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("lua panic: %v", r)
		}
	}()

	err = p.L.CallByParam(lua.P{
		Fn:      p.L.GetGlobal(LuaFunction),
		NRet:    1,
		Protect: true,
	}, lua.LString(text))
	if err != nil {
		return 0, fmt.Errorf("%s: %w", LuaFunction, err)
	}

	ret := p.L.Get(-1)
	p.L.Pop(1)

	num, ok := ret.(lua.LNumber)
	if !ok {
		return 0, fmt.Errorf("%s returned %s, want number", LuaFunction, ret.Type())
	}
	if num < 0 {
		return 0, fmt.Errorf("%s returned negative count %v", LuaFunction, num)
	}
	return int(num), nil
}

// CountWords implements Policy.
func (p *LuaPolicy) CountWords(text string) int {
	n, err := p.Count(text)
	if err != nil {
		p.logger.Error("word count script failed, using fallback: %v", err)
		return p.fallback.CountWords(text)
	}
	return n
}

// Close releases the Lua state.
func (p *LuaPolicy) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	p.closed = true
	p.L.Close()
}
