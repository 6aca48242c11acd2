// shelftool is a CLI utility for inspecting warehouse layouts.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/Faultbox/shelfview/internal/layout"
	"github.com/Faultbox/shelfview/internal/navigation"
	"github.com/Faultbox/shelfview/internal/selector"
	"github.com/Faultbox/shelfview/internal/shelf"
	"github.com/Faultbox/shelfview/internal/store"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "groups":
		cmdGroups(args)
	case "map":
		cmdMap(args)
	case "check":
		cmdCheck(args)
	case "nav":
		cmdNav(args)
	case "import":
		cmdImport(args)
	case "export":
		cmdExport(args)
	case "list", "ls":
		cmdList(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`shelftool - warehouse layout utility

Usage:
  shelftool <command> [options]

Commands:
  groups <layout.yaml>                       List the shelf groups of every floor
  map <layout.yaml> [floor]                  Print the group id map of a floor
  check <layout.yaml>                        Validate a layout
  nav <layout.yaml> <floor/group/row/col[/depth]> <keys...>
                                             Replay arrow keys from a shelf
  import [-db file] <layout.yaml>            Store a layout in the database
  export [-db file] <id> [output.yaml]       Write a stored layout to a file
  list [-db file]                            List stored layouts

Keys for nav are up, down, left, right with optional S- (Shift) or C- (Ctrl)
prefixes.

Examples:
  shelftool groups warehouse.yaml
  shelftool map warehouse.yaml 1
  shelftool nav warehouse.yaml 0/2/0/0 right right S-up C-down`)
}

func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}

func load(path string) *layout.Layout {
	l, err := layout.LoadFile(path)
	if err != nil {
		fail("Error: %v", err)
	}
	return l
}

func cmdGroups(args []string) {
	if len(args) < 1 {
		fail("Usage: shelftool groups <layout.yaml>")
	}
	l := load(args[0])

	for fi, f := range l.Floors {
		e := layout.ExtractGroups(f.Matrix)
		fmt.Printf("Floor %d: %dx%d cells, height %.2f, %d groups\n",
			fi, f.Matrix.Cols(), f.Matrix.Rows(), f.Height, len(e.Groups))
		for _, g := range e.Groups {
			fmt.Printf("  #%-3d at (%d,%d)  %dx%d  rows %-3d shelves %d\n",
				g.ID, g.MinI, g.MinJ, g.Width, g.Depth, g.Rows, g.Cells())
		}
	}
}

func cmdMap(args []string) {
	if len(args) < 1 {
		fail("Usage: shelftool map <layout.yaml> [floor]")
	}
	l := load(args[0])

	floor := 0
	if len(args) > 1 {
		n, err := strconv.Atoi(args[1])
		if err != nil || n < 0 || n >= len(l.Floors) {
			fail("Error: floor %q out of range (0..%d)", args[1], len(l.Floors)-1)
		}
		floor = n
	}

	m := l.Floors[floor].Matrix
	e := layout.ExtractGroups(m)
	width := len(strconv.Itoa(max(e.MaxGroupID(), 0)))
	for i := 0; i < m.Rows(); i++ {
		var b strings.Builder
		for j := 0; j < m.Cols(); j++ {
			if id := e.GroupAt(i, j); id >= 0 {
				fmt.Fprintf(&b, " %*d", width, id)
			} else {
				fmt.Fprintf(&b, " %*s", width, ".")
			}
		}
		fmt.Println(b.String())
	}
}

func cmdCheck(args []string) {
	if len(args) < 1 {
		fail("Usage: shelftool check <layout.yaml>")
	}
	l := load(args[0])
	if err := layout.Validate(l.Floors); err != nil {
		fail("%s: %v", args[0], err)
	}
	fmt.Printf("%s: ok (%d floors)\n", args[0], len(l.Floors))
}

func cmdNav(args []string) {
	if len(args) < 2 {
		fail("Usage: shelftool nav <layout.yaml> <floor/group/row/col[/depth]> <keys...>")
	}
	l := load(args[0])
	start, err := parseLocation(args[1])
	if err != nil {
		fail("Error: %v", err)
	}

	sel := selector.New(selector.Options{
		Floors:   l.Floors,
		Occupied: l.Occupied,
	})
	if !sel.Select(start, shelf.SourceInternal) {
		fail("Error: cannot select %v", start)
	}
	cur, _ := sel.Current()
	fmt.Printf("start  %v\n", cur)

	for _, k := range args[2:] {
		ev, err := parseKey(k)
		if err != nil {
			fail("Error: %v", err)
		}
		moved := sel.HandleKey(ev)
		cur, _ = sel.Current()
		mark := ""
		if !moved {
			mark = "  (stays)"
		}
		fmt.Printf("%-6s %v%s\n", k, cur, mark)
	}
}

func parseLocation(s string) (shelf.Location, error) {
	parts := strings.Split(s, "/")
	if len(parts) != 4 && len(parts) != 5 {
		return shelf.Location{}, fmt.Errorf("location %q: want floor/group/row/col[/depth]", s)
	}
	n := make([]int, len(parts))
	for i, p := range parts {
		v, err := strconv.Atoi(p)
		if err != nil {
			return shelf.Location{}, fmt.Errorf("location %q: %w", s, err)
		}
		n[i] = v
	}
	loc := shelf.Location{Floor: n[0], GroupID: n[1], GroupRow: n[2], GroupColumn: n[3]}
	if len(n) == 5 {
		loc.GroupDepth = &n[4]
	}
	return loc, nil
}

func parseKey(s string) (selector.KeyEvent, error) {
	var ev selector.KeyEvent
	name := s
	switch {
	case strings.HasPrefix(s, "S-"):
		ev.Mods.Shift = true
		name = s[2:]
	case strings.HasPrefix(s, "C-"):
		ev.Mods.Ctrl = true
		name = s[2:]
	}
	ev.Key = navigation.ParseKey(name)
	if ev.Key == navigation.KeyNone {
		return ev, fmt.Errorf("unknown key %q", s)
	}
	return ev, nil
}

func openStore(fs *flag.FlagSet, args []string) (*store.Store, *flag.FlagSet) {
	db := fs.String("db", "shelfview.db", "SQLite database path")
	fs.Parse(args)
	st, err := store.Open(context.Background(), *db)
	if err != nil {
		fail("Error: %v", err)
	}
	return st, fs
}

func cmdImport(args []string) {
	st, fs := openStore(flag.NewFlagSet("import", flag.ExitOnError), args)
	defer st.Close()
	if fs.NArg() < 1 {
		fail("Usage: shelftool import [-db file] <layout.yaml>")
	}

	l := load(fs.Arg(0))
	if err := layout.Validate(l.Floors); err != nil {
		fail("%s: %v", fs.Arg(0), err)
	}
	id, err := st.CreateLayout(context.Background(), l)
	if err != nil {
		fail("Error: %v", err)
	}
	fmt.Println(id)
}

func cmdExport(args []string) {
	st, fs := openStore(flag.NewFlagSet("export", flag.ExitOnError), args)
	defer st.Close()
	if fs.NArg() < 1 {
		fail("Usage: shelftool export [-db file] <id> [output.yaml]")
	}

	id, err := uuid.Parse(fs.Arg(0))
	if err != nil {
		fail("Error: %v", err)
	}
	rec, err := st.GetLayout(context.Background(), id)
	if err != nil {
		fail("Error: %v", err)
	}

	out := rec.Name + ".yaml"
	if rec.Name == "" {
		out = id.String() + ".yaml"
	}
	if fs.NArg() > 1 {
		out = fs.Arg(1)
	}
	if err := rec.Layout.SaveFile(out); err != nil {
		fail("Error: %v", err)
	}
	fmt.Printf("Exported %s to %s\n", id, out)
}

func cmdList(args []string) {
	st, _ := openStore(flag.NewFlagSet("list", flag.ExitOnError), args)
	defer st.Close()

	layouts, err := st.ListLayouts(context.Background())
	if err != nil {
		fail("Error: %v", err)
	}
	for _, l := range layouts {
		fmt.Printf("%s  %-24s %d floors  updated %s\n",
			l.ID, l.Name, l.Floors, l.UpdatedAt.Format("2006-01-02 15:04"))
	}
	fmt.Printf("\nTotal: %d layouts\n", len(layouts))
}
