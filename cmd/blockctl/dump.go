package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/joshuapare/blockkit/block"
)

var (
	styleToken = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true)
	styleState = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	styleDim   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

var dumpCmd = &cobra.Command{
	Use:   "dump <file>",
	Short: "Decode a serialized block file and print the container tree",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			printError("reading %s: %v", args[0], err)
			return err
		}
		var b block.Block
		if _, err := b.DecodeBinary(data); err != nil {
			printError("decoding %s: %v", args[0], err)
			return err
		}
		defer b.Reset()

		if jsonOut {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(describe(&b))
		}
		printTree(&b, 0)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(dumpCmd)
}

// nodeInfo is the JSON shape of one container node.
type nodeInfo struct {
	Token    string     `json:"token"`
	State    string     `json:"state"`
	Count    int        `json:"count"`
	Elements []any      `json:"elements,omitempty"`
	Children []nodeInfo `json:"children,omitempty"`
}

func describe(b *block.Block) nodeInfo {
	token := ""
	if b.Type() != nil {
		token = b.Type().Token()
	}
	n := nodeInfo{
		Token: token,
		State: b.State().String(),
		Count: b.Count(),
	}
	for i := 0; i < b.Count(); i++ {
		v := b.GetBoxed(i)
		if child, ok := v.(block.Block); ok {
			n.Children = append(n.Children, describe(&child))
			continue
		}
		n.Elements = append(n.Elements, v)
	}
	return n
}

func printTree(b *block.Block, depth int) {
	indent := strings.Repeat("  ", depth)
	token := "<untyped>"
	if b.Type() != nil {
		token = b.Type().Token()
	}
	if noColor {
		printInfo("%s%s [%s] x%d\n", indent, token, b.State(), b.Count())
	} else {
		printInfo("%s%s %s %s\n",
			indent,
			styleToken.Render(token),
			styleState.Render("["+b.State().String()+"]"),
			styleDim.Render(fmt.Sprintf("x%d", b.Count())))
	}
	for i := 0; i < b.Count(); i++ {
		v := b.GetBoxed(i)
		if child, ok := v.(block.Block); ok {
			printTree(&child, depth+1)
			continue
		}
		if verbose {
			printInfo("%s  %v\n", indent, v)
		}
	}
}
