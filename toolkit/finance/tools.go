package finance

import (
	"context"
	"fmt"

	"github.com/hupe1980/agentswarm/core"
	"github.com/hupe1980/agentswarm/tool"
)

type symbolArgs struct {
	Symbol string `json:"symbol" description:"Stock ticker symbol, e.g. AAPL."`
}

// NewStockPriceTool creates get_stock_price.
func NewStockPriceTool(c *Client) *tool.FunctionTool {
	return newSymbolTool(
		"get_stock_price",
		"Fetch the current stock price for the given symbol, the current volume, the average price 50d and 200d, EPS, PE and the next earnings Announcement.",
		"price",
		func(ctx context.Context, symbol string) (any, error) { return c.Quote(ctx, symbol) },
	)
}

// NewCompanyFinancialsTool creates get_company_financials.
func NewCompanyFinancialsTool(c *Client) *tool.FunctionTool {
	return newSymbolTool(
		"get_company_financials",
		"Fetch basic financial information for the given company symbol such as the industry, the sector, the name of the company, and the market capitalization.",
		"financials",
		func(ctx context.Context, symbol string) (any, error) { return c.Profile(ctx, symbol) },
	)
}

// NewIncomeStatementTool creates get_income_statement.
func NewIncomeStatementTool(c *Client) *tool.FunctionTool {
	return newSymbolTool(
		"get_income_statement",
		"Fetch last income statement for the given company symbol such as revenue, gross profit, net income, EBITDA, EPS.",
		"financials",
		func(ctx context.Context, symbol string) (any, error) { return c.IncomeStatement(ctx, symbol) },
	)
}

// Tools returns all finance tools sharing c.
func Tools(c *Client) []core.Tool {
	return []core.Tool{
		NewStockPriceTool(c),
		NewCompanyFinancialsTool(c),
		NewIncomeStatementTool(c),
	}
}

// newSymbolTool wraps fetch so that upstream failures reach the model as an
// {"error": ...} payload instead of a tool error.
func newSymbolTool(name, description, what string, fetch func(context.Context, string) (any, error)) *tool.FunctionTool {
	return tool.NewFunctionToolFromStruct(name, description, symbolArgs{},
		func(tc *core.ToolContext, args map[string]any) (any, error) {
			symbol := tool.StringArg(args, "symbol", "")

			out, err := fetch(tc.Context(), symbol)
			if err != nil {
				tc.Logger().Warn("finance.fetch.failed", "tool", name, "symbol", symbol, "error", err.Error())
				return map[string]string{
					"error": fmt.Sprintf("Could not fetch %s for symbol: %s", what, symbol),
				}, nil
			}

			return out, nil
		},
	)
}
