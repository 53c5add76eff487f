package rental

// BuildLedger reproduce los eventos en orden de fecha real y registra el saldo antes y
// después de cada uno. El saldo no se recorta a cero: es un rastro de auditoría tal cual.
// El cálculo de periodos no lo consulta.
func BuildLedger(events []Event) []LedgerEntry {
	ordered := SortByTransactionDate(events)
	ledger := make([]LedgerEntry, 0, len(ordered))
	balance := 0
	for _, ev := range ordered {
		signed := ev.Kind.sign() * ev.Quantity
		entry := LedgerEntry{
			TransactionDate: ev.Date,
			EffectiveDate:   ev.EffectiveDate,
			BalanceBefore:   balance,
			SignedQuantity:  signed,
			Kind:            ev.Kind,
			ReferenceID:     ev.ReferenceID,
		}
		balance += signed
		entry.BalanceAfter = balance
		ledger = append(ledger, entry)
	}
	return ledger
}
