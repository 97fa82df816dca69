// Package ofx parses OFX/QFX bank exports into expense transactions.
package ofx

import (
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"strings"

	"github.com/aclindsa/ofxgo"

	"github.com/smartspend/smartspend/internal/model"
)

// maxDescriptionLen matches the transaction description limit.
const maxDescriptionLen = 100

// Parser implements OFX/QFX file parsing.
type Parser struct{}

// NewParser creates a new OFX parser.
func NewParser() *Parser {
	return &Parser{}
}

// preprocessOFX fixes common formatting issues in OFX files.
func (p *Parser) preprocessOFX(content string) string {
	// Trim any leading whitespace or blank lines before the header
	content = strings.TrimLeft(content, " \t\r\n")

	// Fix mixed-case SEVERITY values (should be INFO, WARN, or ERROR)
	severityRegex := regexp.MustCompile(`(?i)<SEVERITY>(Info|Warn|Error)</SEVERITY>`)
	content = severityRegex.ReplaceAllStringFunc(content, func(match string) string {
		return strings.ToUpper(match)
	})

	// Fix missing closing angle brackets in SGML-style OFX files
	tagFixRegex := regexp.MustCompile(`(?m)^(\s*<[A-Z][A-Z0-9._]*[A-Z0-9])$`)
	content = tagFixRegex.ReplaceAllString(content, "$1>")

	return content
}

// ParseFile parses an OFX/QFX file and returns the expenses it contains.
// Credits (deposits, refunds) are skipped; only money going out becomes a
// transaction.
func (p *Parser) ParseFile(reader io.Reader) ([]model.Transaction, error) {
	content, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read OFX file: %w", err)
	}

	processedContent := p.preprocessOFX(string(content))

	resp, err := ofxgo.ParseResponse(strings.NewReader(processedContent))
	if err != nil {
		return nil, fmt.Errorf("failed to parse OFX file: %w", err)
	}

	var transactions []model.Transaction
	var bankStmts, ccStmts, skipped int

	for _, msg := range resp.Bank {
		if stmt, ok := msg.(*ofxgo.StatementResponse); ok {
			bankStmts++
			txns, n := p.convertStatement(stmt.BankTranList)
			transactions = append(transactions, txns...)
			skipped += n
		}
	}

	for _, msg := range resp.CreditCard {
		if stmt, ok := msg.(*ofxgo.CCStatementResponse); ok {
			ccStmts++
			txns, n := p.convertStatement(stmt.BankTranList)
			transactions = append(transactions, txns...)
			skipped += n
		}
	}

	slog.Info("parsed OFX file",
		"expenses", len(transactions),
		"skipped_credits", skipped,
		"bank_statements", bankStmts,
		"cc_statements", ccStmts)

	return transactions, nil
}

// convertStatement maps a statement's transaction list into expenses,
// returning the expenses and the count of skipped credits.
func (p *Parser) convertStatement(list *ofxgo.TransactionList) ([]model.Transaction, int) {
	if list == nil {
		return nil, 0
	}

	var transactions []model.Transaction
	skipped := 0
	for _, ofxTx := range list.Transactions {
		// OFX uses negative amounts for money going out
		amount, _ := ofxTx.TrnAmt.Float64()
		if amount >= 0 {
			skipped++
			continue
		}

		transactions = append(transactions, model.Transaction{
			Description: p.extractDescription(ofxTx),
			Amount:      -amount,
			Date:        model.DateOf(ofxTx.DtPosted.Time),
		})
	}
	return transactions, skipped
}

// extractDescription builds a clean description from OFX payee/name/memo
// fields, truncated to the description length limit.
func (p *Parser) extractDescription(tx ofxgo.Transaction) string {
	var name string
	switch {
	case tx.Payee != nil && tx.Payee.Name != "":
		name = string(tx.Payee.Name)
	case tx.Memo != "" && isGenericDescription(string(tx.Name)):
		// Sometimes MEMO has better merchant info
		name = string(tx.Memo)
	default:
		name = string(tx.Name)
	}

	name = strings.TrimSpace(name)

	// Remove common processor prefixes
	prefixes := []string{
		"POS PURCHASE ",
		"PURCHASE AUTHORIZED ON ",
		"DEBIT CARD PURCHASE ",
		"ACH DEBIT ",
		"CHECK CARD ",
		"VISA PURCHASE ",
		"MC PURCHASE ",
		"DEBIT PURCHASE ",
	}
	for _, prefix := range prefixes {
		if strings.HasPrefix(strings.ToUpper(name), prefix) {
			name = name[len(prefix):]
			break
		}
	}

	// Clean up date patterns like "MM/DD" at the beginning
	if len(name) > 5 && name[2] == '/' && name[5] == ' ' {
		name = strings.TrimSpace(name[6:])
	}

	if name == "" {
		name = "Imported transaction"
	}
	if runes := []rune(name); len(runes) > maxDescriptionLen {
		name = string(runes[:maxDescriptionLen])
	}
	return name
}

// isGenericDescription checks if a transaction name is too generic.
func isGenericDescription(name string) bool {
	generic := []string{
		"DEBIT",
		"CREDIT",
		"PURCHASE",
		"PAYMENT",
		"POS TRANSACTION",
		"CARD PURCHASE",
	}

	upperName := strings.ToUpper(name)
	for _, g := range generic {
		if upperName == g {
			return true
		}
	}
	return false
}
