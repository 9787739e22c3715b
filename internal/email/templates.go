package email

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// OrderItem represents an item in an order for email purposes
type OrderItem struct {
	ProductID string
	Name      string
	Quantity  int
	Price     decimal.Decimal
}

// TransferDetails carries the bank-transfer instructions shown when the
// shopper chose that payment path.
type TransferDetails struct {
	AccountHolder string
	IBAN          string
	Instructions  string
}

// BuildOrderConfirmationBody builds the HTML body for order confirmation email
func BuildOrderConfirmationBody(orderID string, total decimal.Decimal, items []OrderItem, transfer *TransferDetails) string {
	var itemsHTML strings.Builder
	for _, item := range items {
		name := item.Name
		if name == "" {
			name = item.ProductID
		}
		lineTotal := item.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))
		itemsHTML.WriteString(fmt.Sprintf(
			`<tr>
				<td style="padding: 12px; border-bottom: 1px solid #eee;">%s</td>
				<td style="padding: 12px; border-bottom: 1px solid #eee; text-align: center;">%d</td>
				<td style="padding: 12px; border-bottom: 1px solid #eee; text-align: right;">%s &euro;</td>
				<td style="padding: 12px; border-bottom: 1px solid #eee; text-align: right;">%s &euro;</td>
			</tr>`,
			name,
			item.Quantity,
			item.Price.StringFixed(2),
			lineTotal.StringFixed(2),
		))
	}

	transferHTML := ""
	if transfer != nil {
		transferHTML = fmt.Sprintf(`
		<div style="background: #fff8e1; padding: 15px; border-radius: 5px; margin: 20px 0;">
			<h2 style="font-size: 16px; margin-top: 0;">Bank transfer details</h2>
			<p style="margin: 5px 0;">Account holder: <strong>%s</strong></p>
			<p style="margin: 5px 0;">IBAN: <strong style="font-family: monospace;">%s</strong></p>
			<p style="margin: 5px 0; font-size: 13px; color: #666;">%s</p>
		</div>`,
			transfer.AccountHolder, transfer.IBAN, transfer.Instructions)
	}

	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
	<meta charset="UTF-8">
	<meta name="viewport" content="width=device-width, initial-scale=1.0">
</head>
<body style="font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px;">
	<div style="background: linear-gradient(135deg, #667eea 0%%, #764ba2 100%%); padding: 30px; border-radius: 10px 10px 0 0;">
		<h1 style="color: white; margin: 0; font-size: 24px;">Thank you for your order</h1>
	</div>

	<div style="background: #fff; padding: 30px; border: 1px solid #eee; border-top: none; border-radius: 0 0 10px 10px;">
		<p style="margin-top: 0;">We have received your order and will process it shortly.</p>

		<div style="background: #f8f9fa; padding: 15px; border-radius: 5px; margin: 20px 0;">
			<p style="margin: 0; font-size: 14px; color: #666;">Order number</p>
			<p style="margin: 5px 0 0 0; font-size: 18px; font-weight: bold; font-family: monospace;">%s</p>
		</div>

		<h2 style="font-size: 18px; border-bottom: 2px solid #667eea; padding-bottom: 10px;">Your order</h2>

		<table style="width: 100%%; border-collapse: collapse; margin: 20px 0;">
			<thead>
				<tr style="background: #f8f9fa;">
					<th style="padding: 12px; text-align: left; font-weight: 600;">Product</th>
					<th style="padding: 12px; text-align: center; font-weight: 600;">Qty</th>
					<th style="padding: 12px; text-align: right; font-weight: 600;">Unit price</th>
					<th style="padding: 12px; text-align: right; font-weight: 600;">Subtotal</th>
				</tr>
			</thead>
			<tbody>
				%s
			</tbody>
		</table>

		<div style="text-align: right; padding: 20px; background: #f8f9fa; border-radius: 5px;">
			<span style="font-size: 14px; color: #666;">Total (VAT included)</span>
			<span style="font-size: 24px; font-weight: bold; color: #667eea; margin-left: 10px;">%s &euro;</span>
		</div>
		%s
		<hr style="border: none; border-top: 1px solid #eee; margin: 30px 0;">

		<p style="font-size: 12px; color: #999; margin-bottom: 0;">
			This is an automated message, please do not reply.
		</p>
	</div>
</body>
</html>`, orderID, itemsHTML.String(), total.StringFixed(2), transferHTML)
}
