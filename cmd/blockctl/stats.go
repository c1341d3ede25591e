package main

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"

	"github.com/joshuapare/blockkit/block"
)

var statsCmd = &cobra.Command{
	Use:   "stats <file>",
	Short: "Report layout statistics for a serialized block file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			printError("reading %s: %v", args[0], err)
			return err
		}
		var b block.Block
		used, err := b.DecodeBinary(data)
		if err != nil {
			printError("decoding %s: %v", args[0], err)
			return err
		}
		defer b.Reset()

		s := fileStats{
			FileBytes:   len(data),
			PayloadUsed: used,
		}
		collect(&b, 0, &s)

		if jsonOut {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(s)
		}
		printInfo("file bytes:     %d\n", s.FileBytes)
		printInfo("payload used:   %d\n", s.PayloadUsed)
		printInfo("containers:     %d\n", s.Containers)
		printInfo("leaf elements:  %d\n", s.Leaves)
		printInfo("max depth:      %d\n", s.MaxDepth)
		for token, n := range s.ByToken {
			printInfo("  %-12s %d\n", token, n)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

type fileStats struct {
	FileBytes   int            `json:"file_bytes"`
	PayloadUsed int            `json:"payload_used"`
	Containers  int            `json:"containers"`
	Leaves      int            `json:"leaves"`
	MaxDepth    int            `json:"max_depth"`
	ByToken     map[string]int `json:"by_token,omitempty"`
}

func collect(b *block.Block, depth int, s *fileStats) {
	s.Containers++
	if depth > s.MaxDepth {
		s.MaxDepth = depth
	}
	if b.Type() != nil {
		if s.ByToken == nil {
			s.ByToken = make(map[string]int)
		}
		s.ByToken[b.Type().Token()]++
	}
	for i := 0; i < b.Count(); i++ {
		if child, ok := b.GetBoxed(i).(block.Block); ok {
			collect(&child, depth+1, s)
			continue
		}
		s.Leaves++
	}
}
