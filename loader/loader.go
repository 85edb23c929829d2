package loader

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/nathoo/dropcore/engine/action"
	"github.com/nathoo/dropcore/engine/rules"
	lua "github.com/yuin/gopher-lua"
)

// Load reads every .lua, .yml and .yaml file in dir in name order,
// compiles them into one rule set and validates it. Custom actions declared
// by the files are registered in reg, which the engine must share.
//
// Only an unreadable directory or one with no rule files is an error. A
// broken file or rule is skipped and reported.
func Load(dir string, reg *action.Registry) (*rules.Set, *Report, error) {
	// Discover rule files.
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, nil, fmt.Errorf("reading rules directory %s: %w", dir, err)
	}

	var files []string
	for _, e := range entries {
		if !e.IsDir() && isRuleFile(e.Name()) {
			files = append(files, e.Name())
		}
	}
	if len(files) == 0 {
		return nil, nil, fmt.Errorf("no rule files (.lua, .yml) found in %s", dir)
	}
	sort.Strings(files)

	report := &Report{}
	c := newCompiler(reg, report)
	for _, f := range files {
		root, err := parseFile(filepath.Join(dir, f), f)
		if err != nil {
			report.warn(fmt.Errorf("%w: skipping %s: %v", ErrConfigParse, f, err))
			continue
		}
		report.Files = append(report.Files, f)
		c.file(root)
	}

	set := rules.NewSet(c.rules)
	validate(set, report)
	return set, report, nil
}

// LoadFile compiles a single rule file.
func LoadFile(path string, reg *action.Registry) (*rules.Set, *Report, error) {
	name := filepath.Base(path)
	root, err := parseFile(path, name)
	if err != nil {
		return nil, nil, err
	}
	report := &Report{Files: []string{name}}
	c := newCompiler(reg, report)
	c.file(root)
	set := rules.NewSet(c.rules)
	validate(set, report)
	return set, report, nil
}

func isRuleFile(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".lua", ".yml", ".yaml":
		return true
	}
	return false
}

func parseFile(path, name string) (*Node, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if strings.EqualFold(filepath.Ext(name), ".lua") {
		return ParseLua(string(src), name)
	}
	return ParseYAML(src, name)
}

// ParseLua runs one Lua rule file in a fresh sandboxed VM and returns the
// tree its constructors built. The VM is discarded afterwards.
func ParseLua(src, name string) (*Node, error) {
	// Create sandboxed VM.
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	defer L.Close()

	// Open safe libs only.
	openSafeLibs(L)

	// Sandbox: remove dangerous globals.
	sandbox(L)

	// Register API.
	coll := newCollector(name)
	registerAPI(L, coll)

	fn, err := L.Load(strings.NewReader(src), name)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", name, err)
	}
	L.Push(fn)
	if err := L.PCall(0, lua.MultRet, nil); err != nil {
		return nil, fmt.Errorf("executing %s: %w", name, err)
	}
	return coll.root, nil
}

// openSafeLibs opens only the safe subset of Lua standard libraries.
func openSafeLibs(L *lua.LState) {
	// Base library (print, type, tostring, tonumber, pairs, ipairs, etc.)
	lua.OpenBase(L)
	// Table library (table.insert, table.sort, etc.)
	lua.OpenTable(L)
	// String library (string.format, string.sub, etc.)
	lua.OpenString(L)
	// Math library (math.floor, math.max, etc.)
	lua.OpenMath(L)
}

// sandbox removes dangerous globals and functions.
func sandbox(L *lua.LState) {
	dangerous := []string{
		"dofile", "loadfile", "load", "loadstring",
		"rawset", "rawget", "rawequal",
		"collectgarbage", "require",
	}
	for _, name := range dangerous {
		L.SetGlobal(name, lua.LNil)
	}

	// Rule files must not consume randomness of their own.
	if mathTbl := L.GetGlobal("math"); mathTbl != lua.LNil {
		if tbl, ok := mathTbl.(*lua.LTable); ok {
			tbl.RawSetString("random", lua.LNil)
			tbl.RawSetString("randomseed", lua.LNil)
		}
	}
}
