// briefctl reúne tarefas operacionais do serviço de briefs: listar as colunas
// da planilha, inicializar o Google Sheets e gerar o scope draft de um brief
// exportado.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/xavierca1/saint-brief/internal/config"
	"github.com/xavierca1/saint-brief/internal/entity"
	"github.com/xavierca1/saint-brief/internal/infra/integration/sheets"
	"github.com/xavierca1/saint-brief/internal/pkg/logger"
	"github.com/xavierca1/saint-brief/internal/report"
	"github.com/xavierca1/saint-brief/internal/usecase"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "briefctl",
		Short:        "Ferramentas do serviço de briefs Saint",
		SilenceUsage: true,
	}
	root.AddCommand(newHeadersCmd(), newInitSheetsCmd(), newScopeDraftCmd(time.Now))
	return root
}

func newHeadersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "headers",
		Short: "Lista as colunas da planilha na ordem de gravação",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			headers := entity.SheetHeaders()
			fmt.Fprintf(out, "versão %s, %d colunas\n", entity.HeaderVersion, len(headers))
			for i, h := range headers {
				fmt.Fprintf(out, "%2d  %s\n", i+1, h)
			}
			return nil
		},
	}
}

func newInitSheetsCmd() *cobra.Command {
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "init-sheets",
		Short: "Escreve e formata o cabeçalho da planilha configurada",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if !cfg.SheetsEnabled() {
				return errors.New("GOOGLE_SHEETS_ID e credenciais da service account são obrigatórios")
			}

			log, err := logger.New(cfg.Env)
			if err != nil {
				return err
			}
			defer log.Sync()

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			client, err := sheets.NewClient(ctx, cfg.Sheets)
			if err != nil {
				return err
			}

			out, err := usecase.NewInitSheetUseCase(client, log).Execute(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s (%d columnas en %q)\n", out.Message, out.Columns, cfg.Sheets.SheetName)
			return nil
		},
	}
	cmd.Flags().DurationVar(&timeout, "timeout", 30*time.Second, "tempo máximo para falar com o Google Sheets")
	return cmd
}

func newScopeDraftCmd(now func() time.Time) *cobra.Command {
	var (
		file     string
		lang     string
		timezone string
	)

	cmd := &cobra.Command{
		Use:   "scope-draft",
		Short: "Gera o scope draft de um brief exportado",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			switch strings.ToLower(lang) {
			case string(report.Spanish), string(report.English):
			default:
				return fmt.Errorf("idioma não suportado: %q (use es ou en)", lang)
			}

			loc, err := time.LoadLocation(timezone)
			if err != nil {
				return fmt.Errorf("timezone inválido: %w", err)
			}

			data, err := os.ReadFile(file)
			if err != nil {
				return fmt.Errorf("erro ao ler %s: %w", file, err)
			}

			b, err := readBrief(data)
			if err != nil {
				return fmt.Errorf("%s: %w", file, err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), report.ScopeDraft(b, report.ParseLanguage(lang), now().In(loc)))
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "arquivo JSON do brief (export ou registro de rascunho)")
	cmd.Flags().StringVarP(&lang, "lang", "l", string(report.Spanish), "idioma: es ou en")
	cmd.Flags().StringVar(&timezone, "timezone", "America/Mexico_City", "fuso usado na data de geração")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

// readBrief aceita tanto o export de GET /brief/export quanto um registro de
// rascunho gravado pelo autosave.
func readBrief(data []byte) (*entity.Brief, error) {
	b, err := entity.Deserialize(data)
	if err == nil {
		return b, nil
	}
	if draft, _, derr := usecase.DecodeDraft(data); derr == nil {
		return draft, nil
	}
	return nil, err
}
