package domain

// Table is a mongo collection name
type Table string

const (
	TableAuctions    Table = "auctions"
	TableBids        Table = "bids"
	TableBidcounters Table = "bid_counters"
	TableAccounts    Table = "accounts"
)

// AuctionId is the opaque identifier of one auction
type AuctionId string

func (id AuctionId) String() string {
	return string(id)
}

// BidderId is the verified identity handed over by the auth collaborator
type BidderId string

func (id BidderId) String() string {
	return string(id)
}

// BidId is the unique identifier of one accepted bid
type BidId string

// VehicleId references the listed item, owned by the listing subsystem
type VehicleId string
