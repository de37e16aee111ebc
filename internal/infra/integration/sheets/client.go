package sheets

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/oauth2/google"
	"golang.org/x/oauth2/jwt"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/xavierca1/saint-brief/internal/config"
)

type Client struct {
	svc           *sheets.Service
	spreadsheetID string
	sheetName     string
}

// NewClient autentica com a service account configurada: JSON/arquivo de
// credenciais ou o par email + chave privada.
func NewClient(ctx context.Context, cfg config.SheetsConfig) (*Client, error) {
	auth, err := authOption(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return NewClientWithOptions(ctx, cfg.SpreadsheetID, cfg.SheetName, auth)
}

func NewClientWithOptions(ctx context.Context, spreadsheetID, sheetName string, opts ...option.ClientOption) (*Client, error) {
	if spreadsheetID == "" {
		return nil, errors.New("sheets: GOOGLE_SHEETS_ID vazio")
	}
	svc, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("erro ao criar serviço do Sheets: %w", err)
	}
	return &Client{svc: svc, spreadsheetID: spreadsheetID, sheetName: sheetName}, nil
}

func authOption(ctx context.Context, cfg config.SheetsConfig) (option.ClientOption, error) {
	if creds := strings.TrimSpace(cfg.Credentials); creds != "" {
		if strings.HasPrefix(creds, "{") {
			return option.WithCredentialsJSON([]byte(creds)), nil
		}
		return option.WithCredentialsFile(creds), nil
	}
	if cfg.ServiceAccountEmail == "" || cfg.PrivateKey == "" {
		return nil, errors.New("sheets: credenciais da service account ausentes")
	}
	jwtCfg := &jwt.Config{
		Email:      cfg.ServiceAccountEmail,
		PrivateKey: []byte(cfg.PrivateKey),
		Scopes:     []string{sheets.SpreadsheetsScope},
		TokenURL:   google.JWTTokenURL,
	}
	return option.WithTokenSource(jwtCfg.TokenSource(ctx)), nil
}

// EnsureHeaders garante que a linha 1 contém exatamente os cabeçalhos. Cria a
// aba se ela não existir e escreve os cabeçalhos numa planilha vazia.
func (c *Client) EnsureHeaders(ctx context.Context, headers []string) error {
	if _, err := c.ensureSheet(ctx); err != nil {
		return err
	}

	resp, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, c.headerRange(len(headers))).Context(ctx).Do()
	if err != nil {
		return classify("ler cabeçalhos", err)
	}

	if len(resp.Values) == 0 || len(resp.Values[0]) == 0 {
		return c.writeHeaders(ctx, headers)
	}

	current := resp.Values[0]
	if len(current) != len(headers) {
		return fmt.Errorf("%w: %d colunas na planilha, %d esperadas", ErrHeaderMismatch, len(current), len(headers))
	}
	for i, h := range headers {
		if got := fmt.Sprint(current[i]); got != h {
			return fmt.Errorf("%w: coluna %s = %q, esperado %q", ErrHeaderMismatch, columnName(i+1), got, h)
		}
	}
	return nil
}

// Append grava a linha logo abaixo da última ocupada na coluna A.
func (c *Client) Append(ctx context.Context, row []string) error {
	col, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, c.rangeOf("A:A")).Context(ctx).Do()
	if err != nil {
		return classify("ler coluna A", err)
	}
	next := len(col.Values) + 1

	vr := &sheets.ValueRange{Values: [][]interface{}{toCells(row)}}
	_, err = c.svc.Spreadsheets.Values.Append(c.spreadsheetID, c.rangeOf(fmt.Sprintf("A%d", next)), vr).
		ValueInputOption("RAW").
		Context(ctx).
		Do()
	if err != nil {
		return classify("gravar linha", err)
	}
	return nil
}

// InitSheet escreve os cabeçalhos e formata a linha 1: negrito, fundo azul
// claro e congelada.
func (c *Client) InitSheet(ctx context.Context, headers []string) error {
	sheetID, err := c.ensureSheet(ctx)
	if err != nil {
		return err
	}
	if err := c.writeHeaders(ctx, headers); err != nil {
		return err
	}

	req := &sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{
			{
				RepeatCell: &sheets.RepeatCellRequest{
					Range: &sheets.GridRange{
						SheetId:          sheetID,
						StartRowIndex:    0,
						EndRowIndex:      1,
						StartColumnIndex: 0,
						EndColumnIndex:   int64(len(headers)),
						ForceSendFields:  []string{"SheetId", "StartRowIndex", "StartColumnIndex"},
					},
					Cell: &sheets.CellData{
						UserEnteredFormat: &sheets.CellFormat{
							BackgroundColor: &sheets.Color{Red: 0.79, Green: 0.86, Blue: 1.0},
							TextFormat:      &sheets.TextFormat{Bold: true},
						},
					},
					Fields: "userEnteredFormat(backgroundColor,textFormat)",
				},
			},
			{
				UpdateSheetProperties: &sheets.UpdateSheetPropertiesRequest{
					Properties: &sheets.SheetProperties{
						SheetId:         sheetID,
						GridProperties:  &sheets.GridProperties{FrozenRowCount: 1},
						ForceSendFields: []string{"SheetId"},
					},
					Fields: "gridProperties.frozenRowCount",
				},
			},
		},
	}
	if _, err := c.svc.Spreadsheets.BatchUpdate(c.spreadsheetID, req).Context(ctx).Do(); err != nil {
		return classify("formatar cabeçalhos", err)
	}
	return nil
}

// ensureSheet devolve o id da aba, criando-a quando não existe.
func (c *Client) ensureSheet(ctx context.Context) (int64, error) {
	ss, err := c.svc.Spreadsheets.Get(c.spreadsheetID).Fields("sheets.properties").Context(ctx).Do()
	if err != nil {
		return 0, classify("ler planilha", err)
	}
	for _, s := range ss.Sheets {
		if s.Properties != nil && s.Properties.Title == c.sheetName {
			return s.Properties.SheetId, nil
		}
	}

	req := &sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{{
			AddSheet: &sheets.AddSheetRequest{
				Properties: &sheets.SheetProperties{Title: c.sheetName},
			},
		}},
	}
	resp, err := c.svc.Spreadsheets.BatchUpdate(c.spreadsheetID, req).Context(ctx).Do()
	if err != nil {
		return 0, classify("criar aba", err)
	}
	var id int64
	if len(resp.Replies) > 0 && resp.Replies[0].AddSheet != nil && resp.Replies[0].AddSheet.Properties != nil {
		id = resp.Replies[0].AddSheet.Properties.SheetId
	}
	return id, nil
}

func (c *Client) writeHeaders(ctx context.Context, headers []string) error {
	vr := &sheets.ValueRange{Values: [][]interface{}{toCells(headers)}}
	_, err := c.svc.Spreadsheets.Values.Update(c.spreadsheetID, c.rangeOf("A1"), vr).
		ValueInputOption("RAW").
		Context(ctx).
		Do()
	if err != nil {
		return classify("escrever cabeçalhos", err)
	}
	return nil
}

func (c *Client) headerRange(columns int) string {
	return c.rangeOf("A1:" + columnName(columns) + "1")
}

func (c *Client) rangeOf(cells string) string {
	return "'" + strings.ReplaceAll(c.sheetName, "'", "''") + "'!" + cells
}

// columnName converte 1 → A, 28 → AB.
func columnName(n int) string {
	var name []byte
	for n > 0 {
		n--
		name = append([]byte{byte('A' + n%26)}, name...)
		n /= 26
	}
	return string(name)
}

func toCells(values []string) []interface{} {
	cells := make([]interface{}, len(values))
	for i, v := range values {
		cells[i] = v
	}
	return cells
}
