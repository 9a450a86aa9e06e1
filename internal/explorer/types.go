package explorer

// Transaction is the subset of a blockchain.info transaction we read.
// Size is zero when the explorer omits it.
type Transaction struct {
	Hash string `json:"hash"`
	Size int64  `json:"size"`
}

// Block is a full block as returned by /rawblock
type Block struct {
	Hash   string        `json:"hash"`
	Height int64         `json:"height,omitempty"`
	Tx     []Transaction `json:"tx"`
}

// BlockStub is one entry of the /blocks day listing
type BlockStub struct {
	Hash   string `json:"hash"`
	Height int64  `json:"height"`
	Time   int64  `json:"time"`
}

// AddressPage is one page of /rawaddr
type AddressPage struct {
	Address string        `json:"address"`
	NTx     int           `json:"n_tx"`
	Txs     []Transaction `json:"txs"`
}
