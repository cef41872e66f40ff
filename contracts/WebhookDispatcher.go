package contracts

type WebhookDispatcher interface {
	SetWebhookUrl(sheetId string, canonicalCellId string, webhookUrl string)
	GetWebhookUrl(sheetId string, canonicalCellId string) string
	SubscribedCells(sheetId string) []string
	Notify(sheetId string, cells []*CellData)
	Start()
	Close()
}
