package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"sort"
	"strings"

	pgraph "github.com/orinthal/pgraph"
)

const helpText = `pgraph interactive REPL

Commands:
  new <name>           Create a new empty graph
  load <name> <file>   Load a graph from a JSON file
  unload <name>        Remove a loaded graph
  list                 List all loaded graphs
  use <name>           Set the active graph for queries
  mode <rows|paths|sets>
                       Choose how query output is shaped (default: rows)
  help                 Show this help message
  exit / quit          Exit the REPL

Any other input is treated as a pattern query against the active
graph, of the form:

  MATCH <pattern> [WHERE <expr>] [RETURN <items>] [ORDER BY <items>] [SKIP n] [LIMIT n]

Examples:
  user-[:MEMBER_OF]->group
  person:Person WHERE person.age > 25 RETURN person.name
`

// session holds everything the command table's handlers need: the
// loaded graphs, which one queries run against, and the shape queries
// are printed in. A zero session is ready to use.
type session struct {
	graphs map[string]*pgraph.Graph
	active string
	mode   string
}

// command is one REPL verb: its argument usage for error messages and
// the handler that runs it. Unrecognized input falls through to
// runQuery rather than living in this table.
type command struct {
	usage string
	run   func(s *session, args []string) error
}

var commands map[string]*command

func init() {
	commands = map[string]*command{
		"help":   {usage: "help", run: cmdHelp},
		"list":   {usage: "list", run: cmdList},
		"new":    {usage: "new <name>", run: cmdNew},
		"use":    {usage: "use <name>", run: cmdUse},
		"load":   {usage: "load <name> <file>", run: cmdLoad},
		"unload": {usage: "unload <name>", run: cmdUnload},
		"mode":   {usage: "mode <rows|paths|sets>", run: cmdMode},
	}
}

func main() {
	s := &session{graphs: make(map[string]*pgraph.Graph), mode: "rows"}

	scanner := bufio.NewScanner(os.Stdin)
	fmt.Println("pgraph — in-memory property-graph query engine")
	fmt.Println(`Type "help" for available commands.`)
	fmt.Println()

	for {
		fmt.Print(s.prompt())

		if !scanner.Scan() {
			return
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "exit" || line == "quit" {
			return
		}

		parts := strings.Fields(line)
		if cmd, ok := commands[strings.ToLower(parts[0])]; ok {
			if err := cmd.run(s, parts[1:]); err != nil {
				fmt.Fprintf(os.Stderr, "usage: %s\n", cmd.usage)
			}
			continue
		}

		if err := runQuery(s, line); err != nil {
			fmt.Fprintf(os.Stderr, "query error: %v\n", err)
		}
	}
}

func (s *session) prompt() string {
	if s.active == "" {
		return "> "
	}
	return fmt.Sprintf("[%s:%s]> ", s.active, s.mode)
}

func cmdHelp(s *session, args []string) error {
	fmt.Print(helpText)
	return nil
}

func cmdList(s *session, args []string) error {
	if len(s.graphs) == 0 {
		fmt.Println("(no graphs loaded)")
		return nil
	}
	names := make([]string, 0, len(s.graphs))
	for name := range s.graphs {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		marker := " "
		if name == s.active {
			marker = "*"
		}
		g := s.graphs[name]
		fmt.Printf("  %s %-12s %d node(s), %d edge(s)\n", marker, name, g.NodeCount(), g.EdgeCount())
	}
	return nil
}

func cmdNew(s *session, args []string) error {
	if len(args) < 1 {
		return errUsage
	}
	name := args[0]
	s.graphs[name] = pgraph.New()
	if s.active == "" {
		s.active = name
	}
	fmt.Printf("created empty graph %q\n", name)
	return nil
}

func cmdUse(s *session, args []string) error {
	if len(args) < 1 {
		return errUsage
	}
	name := args[0]
	if _, ok := s.graphs[name]; !ok {
		fmt.Fprintf(os.Stderr, "no graph named %q\n", name)
		return nil
	}
	s.active = name
	fmt.Printf("active graph set to %q\n", name)
	return nil
}

func cmdLoad(s *session, args []string) error {
	if len(args) < 2 {
		return errUsage
	}
	name, path := args[0], args[1]
	g, err := pgraph.LoadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error loading %q: %v\n", path, err)
		return nil
	}
	s.graphs[name] = g
	if s.active == "" {
		s.active = name
	}
	fmt.Printf("loaded %q\n", name)
	return nil
}

func cmdUnload(s *session, args []string) error {
	if len(args) < 1 {
		return errUsage
	}
	name := args[0]
	if _, ok := s.graphs[name]; !ok {
		fmt.Fprintf(os.Stderr, "no graph named %q\n", name)
		return nil
	}
	delete(s.graphs, name)
	if s.active == name {
		s.active = ""
	}
	fmt.Printf("unloaded %q\n", name)
	return nil
}

func cmdMode(s *session, args []string) error {
	if len(args) < 1 {
		return errUsage
	}
	switch strings.ToLower(args[0]) {
	case "rows", "paths", "sets":
		s.mode = strings.ToLower(args[0])
		fmt.Printf("output mode set to %q\n", s.mode)
		return nil
	default:
		fmt.Fprintln(os.Stderr, `mode must be one of "rows", "paths", "sets"`)
		return nil
	}
}

var errUsage = fmt.Errorf("missing argument")

// runQuery dispatches line to the Match* entry point matching s.mode
// and prints a shape-appropriate summary before the results
// themselves, so a user driving the REPL can see at a glance how many
// rows/paths came back and which columns they carry.
func runQuery(s *session, line string) error {
	if s.active == "" {
		return fmt.Errorf("no active graph — use 'load' or 'use' first")
	}
	g := s.graphs[s.active]
	ctx := context.Background()

	switch s.mode {
	case "paths":
		paths, err := g.MatchPaths(ctx, line, pgraph.Options{})
		if err != nil {
			return err
		}
		fmt.Printf("%d path(s)\n", len(paths))
		for _, p := range paths {
			fmt.Println(formatPath(p))
		}
	case "sets":
		sets, err := g.Match(ctx, line, pgraph.Options{})
		if err != nil {
			return err
		}
		fmt.Printf("%d column(s): %s\n", len(sets), strings.Join(columnNames(sets), ", "))
		for col, ids := range sets {
			fmt.Printf("  %s: %s\n", col, strings.Join(idSet(ids), ", "))
		}
	default:
		rows, err := g.MatchRows(ctx, line, pgraph.Options{})
		if err != nil {
			return err
		}
		fmt.Printf("%d row(s)", len(rows))
		if len(rows) > 0 {
			fmt.Printf(", columns: %s", strings.Join(rowColumns(rows[0]), ", "))
		}
		fmt.Println()
		for _, row := range rows {
			fmt.Println(formatRow(row))
		}
	}
	return nil
}

func rowColumns(row pgraph.Row) []string {
	cols := make([]string, 0, len(row))
	for k := range row {
		cols = append(cols, k)
	}
	sort.Strings(cols)
	return cols
}

func formatRow(row pgraph.Row) string {
	cols := rowColumns(row)
	parts := make([]string, len(cols))
	for i, k := range cols {
		parts[i] = fmt.Sprintf("%s=%s", k, row[k].String())
	}
	return strings.Join(parts, ", ")
}

func columnNames(sets pgraph.ColumnSets) []string {
	cols := make([]string, 0, len(sets))
	for k := range sets {
		cols = append(cols, k)
	}
	sort.Strings(cols)
	return cols
}

func idSet(ids map[string]bool) []string {
	out := make([]string, 0, len(ids))
	for id := range ids {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

func formatPath(p pgraph.PathMatch) string {
	var b strings.Builder
	vars := make([]string, 0, len(p.Nodes))
	for v := range p.Nodes {
		vars = append(vars, v)
	}
	sort.Strings(vars)
	for i, v := range vars {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%s=%s", v, p.Nodes[v])
	}
	for _, e := range p.Edges {
		fmt.Fprintf(&b, " | %s-[%s]->%s", e.From, e.Type, e.To)
	}
	return b.String()
}
