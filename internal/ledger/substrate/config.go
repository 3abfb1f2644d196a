package substrate

import "time"

// Methods names the RPC methods used for each call. Header, hash and subscription methods are
// the node's standard ones; block and events must return decoded JSON.
type Methods struct {
	Header               string
	BlockHash            string
	FinalizedHead        string
	Block                string
	Events               string
	SubscribeNewHeads    string
	UnsubscribeNewHeads  string
	SubscribeFinalized   string
	UnsubscribeFinalized string
}

// DefaultMethods returns the method names of a Substrate node with a decoding RPC layer.
func DefaultMethods() Methods {
	return Methods{
		Header:               "chain_getHeader",
		BlockHash:            "chain_getBlockHash",
		FinalizedHead:        "chain_getFinalizedHead",
		Block:                "chain_getBlock",
		Events:               "state_getEvents",
		SubscribeNewHeads:    "chain_subscribeNewHeads",
		UnsubscribeNewHeads:  "chain_unsubscribeNewHeads",
		SubscribeFinalized:   "chain_subscribeFinalizedHeads",
		UnsubscribeFinalized: "chain_unsubscribeFinalizedHeads",
	}
}

type Config struct {
	HTTPURL string
	WSURL   string
	Timeout time.Duration
	Methods Methods
}
