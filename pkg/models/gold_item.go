package models

// Gold item types shown in the storefront. Other values are accepted.
const (
	GoldTypeBar    = "bar"
	GoldTypeNugget = "nugget"
)

// GoldItem is a catalog entry. Purity is in karats.
type GoldItem struct {
	Name        string  `bson:"name" json:"name"`
	Type        string  `bson:"type" json:"type"`
	Purity      float64 `bson:"purity" json:"purity"`
	WeightGrams float64 `bson:"weight_grams" json:"weight_grams"`
	PriceUSD    float64 `bson:"price_usd" json:"price_usd"`
	Image       *string `bson:"image" json:"image"`
	ThreeDURL   *string `bson:"three_d_url" json:"three_d_url"`
	InStock     bool    `bson:"in_stock" json:"in_stock"`
	Badge       *string `bson:"badge" json:"badge"`
}

func (GoldItem) CollectionName() string {
	return "golditem"
}

// Collection is implemented by every stored entity.
type Collection interface {
	CollectionName() string
}
