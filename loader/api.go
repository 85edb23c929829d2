package loader

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	lua "github.com/yuin/gopher-lua"
)

// collector accumulates Lua definitions during file execution into the
// same tree a YAML file decodes to.
type collector struct {
	name    string
	root    *Node
	targets *Node
	reg     *Node
}

func newCollector(name string) *collector {
	c := &collector{name: name, root: Map(), targets: Map(), reg: Map()}
	c.root.Source = name
	c.root.Set("otherdrops", c.targets)
	c.root.Set("register", c.reg)
	return c
}

// registerAPI registers all Lua constructors and helpers as globals.
func registerAPI(L *lua.LState, coll *collector) {
	registerConstructors(L, coll)
	registerHelpers(L)
}

func registerConstructors(L *lua.LState, coll *collector) {
	// Target "STONE" { rule, rule, ... } or Target "STONE" { action = ..., drop = ... }
	// Curried: Target("STONE") returns a function that takes a table.
	L.SetGlobal("Target", L.NewFunction(func(L *lua.LState) int {
		key := L.CheckString(1)
		line := callerLine(L)
		L.Push(L.NewFunction(func(L *lua.LState) int {
			tbl := L.CheckTable(1)
			body := luaToNode(tbl, coll.name, line)
			if body.Kind == MapNode {
				body = &Node{Kind: ListNode, Items: []*Node{body}, Source: coll.name, Line: line}
			}
			if prev := coll.targets.Get(key); prev != nil {
				prev.Items = append(prev.Items, body.Items...)
				return 0
			}
			coll.targets.Set(key, body)
			return 0
		}))
		return 1
	}))

	// Defaults { action = "BREAK", world = "world" } applies to later rules
	// in the same file.
	L.SetGlobal("Defaults", L.NewFunction(func(L *lua.LState) int {
		tbl := L.CheckTable(1)
		coll.root.Set("defaults", luaToNode(tbl, coll.name, callerLine(L)))
		return 0
	}))

	// Register("owner", "TAG", ...) claims custom action tags.
	L.SetGlobal("Register", L.NewFunction(func(L *lua.LState) int {
		owner := L.CheckString(1)
		tags := coll.reg.Get(owner)
		if tags == nil {
			tags = List()
			coll.reg.Set(owner, tags)
		}
		for i := 2; i <= L.GetTop(); i++ {
			tags.Items = append(tags.Items, Scalar(L.CheckString(i)))
		}
		return 0
	}))
}

func registerHelpers(L *lua.LState) {
	// Range(1, 3) -> "1-3"
	L.SetGlobal("Range", L.NewFunction(func(L *lua.LState) int {
		lo := L.CheckInt(1)
		hi := L.OptInt(2, lo)
		L.Push(lua.LString(fmt.Sprintf("%d-%d", lo, hi)))
		return 1
	}))

	// Enchant("sharpness", 3) -> "sharpness#3"
	L.SetGlobal("Enchant", L.NewFunction(func(L *lua.LState) int {
		name := L.CheckString(1)
		if L.GetTop() < 2 {
			L.Push(lua.LString(name))
			return 1
		}
		L.Push(lua.LString(fmt.Sprintf("%s#%d", name, L.CheckInt(2))))
		return 1
	}))

	// Percent(12.5) -> "12.5%"
	L.SetGlobal("Percent", L.NewFunction(func(L *lua.LState) int {
		v := float64(L.CheckNumber(1))
		L.Push(lua.LString(strconv.FormatFloat(v, 'f', -1, 64) + "%"))
		return 1
	}))
}

// callerLine is the line of the Lua call currently executing.
func callerLine(L *lua.LState) int {
	where := strings.TrimSuffix(L.Where(1), ":")
	i := strings.LastIndexByte(where, ':')
	if i < 0 {
		return 0
	}
	n, _ := strconv.Atoi(where[i+1:])
	return n
}

// luaToNode converts a Lua value to a node recursively. Tables with a
// sequence part are lists; others are maps with sorted keys.
func luaToNode(v lua.LValue, name string, line int) *Node {
	var n *Node
	switch val := v.(type) {
	case lua.LString:
		n = Scalar(string(val))
	case lua.LNumber:
		n = Scalar(strconv.FormatFloat(float64(val), 'f', -1, 64))
	case lua.LBool:
		n = Scalar(strconv.FormatBool(bool(val)))
	case *lua.LTable:
		if maxN := val.MaxN(); maxN > 0 {
			n = List()
			for i := 1; i <= maxN; i++ {
				n.Items = append(n.Items, luaToNode(val.RawGetInt(i), name, line))
			}
			break
		}
		n = Map()
		var keys []string
		val.ForEach(func(k, _ lua.LValue) {
			if ks, ok := k.(lua.LString); ok {
				keys = append(keys, string(ks))
			}
		})
		sort.Strings(keys)
		for _, k := range keys {
			n.Set(k, luaToNode(val.RawGetString(k), name, line))
		}
	default:
		n = Scalar("")
	}
	n.Source, n.Line = name, line
	return n
}
