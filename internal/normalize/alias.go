package normalize

// Alias lists in precedence order. Downstream consumers rely on this order.
var (
	ItemAliases       = []string{"Item", "SKU", "Item (SKU)", "Item Name", "Product"}
	SerialAliases     = []string{"Lot/Serial", "LotSerial", "Serial", "IMEI", "Lot / Serial"}
	ExpirationAliases = []string{"Expiration Date", "Expiry", "Expiration", "Expire"}
	QtyAliases        = []string{"Qty", "Quantity", "On Hand", "Qty On Hand"}
	CostAliases       = []string{"Cost", "Avg Cost", "Unit Cost"}
	BinAliases        = []string{"Bin", "Location", "Bin Location", "Loc"}
)
