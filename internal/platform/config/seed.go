package config

import (
	"fmt"

	"github.com/fmops/finledger/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Seed is the data set the engine starts from: the chart of accounts, the
// fund authority hierarchy and the overhead rate pools.
type Seed struct {
	Accounts      []domain.Account
	Hierarchy     []*domain.FundControlNode
	OverheadPools []domain.OverheadPool
}

// Wire representations for the YAML seed file. Amounts travel as floats and
// are converted to decimals on the way in.
type seedFile struct {
	Accounts      []seedAccount `mapstructure:"accounts"`
	Hierarchy     []seedNode    `mapstructure:"hierarchy"`
	OverheadPools []seedPool    `mapstructure:"overhead_pools"`
}

type seedAccount struct {
	Code  string `mapstructure:"code"`
	Title string `mapstructure:"title"`
	Type  string `mapstructure:"type"`
}

type seedNode struct {
	ID                string     `mapstructure:"id"`
	Name              string     `mapstructure:"name"`
	TotalAuthority    float64    `mapstructure:"total_authority"`
	AmountDistributed float64    `mapstructure:"amount_distributed"`
	Children          []seedNode `mapstructure:"children"`
}

type seedPool struct {
	Function string  `mapstructure:"function"`
	Rate     float64 `mapstructure:"rate"`
}

// LoadSeed reads a YAML seed file.
func LoadSeed(path string) (*Seed, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading seed file %s: %w", path, err)
	}

	var sf seedFile
	if err := v.Unmarshal(&sf); err != nil {
		return nil, fmt.Errorf("parsing seed file %s: %w", path, err)
	}

	seed := &Seed{}
	for _, a := range sf.Accounts {
		seed.Accounts = append(seed.Accounts, domain.Account{
			Code:  a.Code,
			Title: a.Title,
			Type:  domain.AccountType(a.Type),
		})
	}
	if len(seed.Accounts) == 0 {
		seed.Accounts = domain.ChartOfAccounts()
	}
	for _, n := range sf.Hierarchy {
		seed.Hierarchy = append(seed.Hierarchy, toNode(n))
	}
	for _, p := range sf.OverheadPools {
		seed.OverheadPools = append(seed.OverheadPools, domain.OverheadPool{
			Function: p.Function,
			Rate:     decimal.NewFromFloat(p.Rate),
		})
	}
	return seed, nil
}

func toNode(n seedNode) *domain.FundControlNode {
	node := &domain.FundControlNode{
		NodeID:            n.ID,
		Name:              n.Name,
		TotalAuthority:    decimal.NewFromFloat(n.TotalAuthority),
		AmountDistributed: decimal.NewFromFloat(n.AmountDistributed),
	}
	for _, c := range n.Children {
		node.Children = append(node.Children, toNode(c))
	}
	return node
}

// DefaultSeed returns a small built-in data set used when no seed file is
// supplied.
func DefaultSeed() *Seed {
	return &Seed{
		Accounts: domain.ChartOfAccounts(),
		Hierarchy: []*domain.FundControlNode{
			{
				NodeID: "FUND-OMA", Name: "Operations & Maintenance",
				TotalAuthority:    decimal.NewFromInt(5_000_000),
				AmountDistributed: decimal.NewFromInt(3_200_000),
				Children: []*domain.FundControlNode{
					{
						NodeID: "CMD-NW", Name: "Northwest Command",
						TotalAuthority:    decimal.NewFromInt(2_000_000),
						AmountDistributed: decimal.NewFromInt(1_400_000),
						Children: []*domain.FundControlNode{
							{NodeID: "CC-ENG", Name: "Engineering", TotalAuthority: decimal.NewFromInt(800_000), AmountDistributed: decimal.NewFromInt(650_000)},
							{NodeID: "CC-OPS", Name: "Operations", TotalAuthority: decimal.NewFromInt(600_000), AmountDistributed: decimal.NewFromInt(480_000)},
						},
					},
					{
						NodeID: "CMD-SE", Name: "Southeast Command",
						TotalAuthority:    decimal.NewFromInt(1_200_000),
						AmountDistributed: decimal.NewFromInt(900_000),
					},
				},
			},
		},
		OverheadPools: []domain.OverheadPool{
			{Function: "Engineering", Rate: decimal.RequireFromString("12.5")},
			{Function: "Program Management", Rate: decimal.RequireFromString("8")},
			{Function: "Facilities", Rate: decimal.RequireFromString("15")},
		},
	}
}
