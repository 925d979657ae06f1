package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/kailas-cloud/faqdex/internal/domain/search/request"
	chitransport "github.com/kailas-cloud/faqdex/internal/transport/chi"
)

func newAskCmd(a *app) *cobra.Command {
	var topK int

	cmd := &cobra.Command{
		Use:   "ask <question>",
		Short: "Answer a single question and print the JSON result",
		Example: `  faqdex ask "환불은 언제까지 가능한가요?"
  faqdex ask --top-k 1 배송 조회`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.load(); err != nil {
				return err
			}
			defer a.sync()
			return a.ask(cmd, strings.Join(args, " "), topK)
		},
	}
	cmd.Flags().IntVarP(&topK, "top-k", "k", 0, "number of candidates to cite (default: retrieval.top_k)")
	return cmd
}

func (a *app) ask(cmd *cobra.Command, question string, topK int) error {
	ctx := cmd.Context()
	receivedAt := time.Now()

	src, store, err := buildSource(ctx, a.cfg, a.logger)
	if err != nil {
		return err
	}
	if store != nil {
		defer store.Close()
	}

	answers, err := buildAnswerService(a.cfg, src)
	if err != nil {
		return err
	}

	req, err := request.New(question, topK, receivedAt)
	if err != nil {
		return err
	}
	res, err := answers.Ask(ctx, &req)
	if err != nil {
		return err
	}
	return writeJSON(cmd.OutOrStdout(), chitransport.NewAnswerResponse(res))
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	return nil
}
