package models

import (
	"fmt"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

// OrderCountRange is an inclusive {min,max} draw range for one day-of-week
// category.
type OrderCountRange struct {
	Min int `mapstructure:"min"`
	Max int `mapstructure:"max"`
}

// TipRange is a whole-percent tip range for one dining option.
type TipRange struct {
	Min int `mapstructure:"min"`
	Max int `mapstructure:"max"`
}

// Gates holds the independent Bernoulli probabilities for the discount
// waterfall and the assembly/payment heuristics. Each value is "proceed with
// probability p".
type Gates struct {
	TimeBasedDiscount float64 `mapstructure:"time_based_discount"`
	LoyaltyDiscount   float64 `mapstructure:"loyalty_discount"`
	ComboDiscount     float64 `mapstructure:"combo_discount"`
	PromoCode         float64 `mapstructure:"promo_code"`
	LineItemDiscount  float64 `mapstructure:"line_item_discount"`
	ThresholdDiscount float64 `mapstructure:"threshold_discount"`
	LegacyDiscount    float64 `mapstructure:"legacy_discount"`

	CustomerAssigned float64 `mapstructure:"customer_assigned"`
	CustomerVIP      float64 `mapstructure:"customer_vip"`
	LineItemNote     float64 `mapstructure:"line_item_note"`
	MultiQuantity    float64 `mapstructure:"multi_quantity"`
	ModifierAttach   float64 `mapstructure:"modifier_attach"`
	OptionalModifier float64 `mapstructure:"optional_modifier"`
	TakeoutZeroTip   float64 `mapstructure:"takeout_zero_tip"`
	GiftCardPayment  float64 `mapstructure:"gift_card_payment"`
	SplitDineInParty float64 `mapstructure:"split_dine_in_party"`
	SplitBase        float64 `mapstructure:"split_base"`
	EvenSplit        float64 `mapstructure:"even_split"`
	CashPreference   float64 `mapstructure:"cash_preference"`
}

// DatabaseConfig points the audit mirror at Postgres.
type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	SSLMode  string `mapstructure:"sslmode"`
}

// CloudStorageConfig selects the bucket daily reports are uploaded to.
type CloudStorageConfig struct {
	Provider   string `mapstructure:"provider"`
	BucketName string `mapstructure:"bucket_name"`
	Region     string `mapstructure:"region"`
}

// APIConfig carries the sandbox platform credentials.
type APIConfig struct {
	BaseURL            string `mapstructure:"base_url"`
	MerchantID         string `mapstructure:"merchant_id"`
	APIToken           string `mapstructure:"api_token"`
	EcommerceToken     string `mapstructure:"ecommerce_token"` // empty = card routing disabled
	RequestTimeoutSecs int    `mapstructure:"request_timeout_secs"`
}

type Config struct {
	Seed     int64  `mapstructure:"seed"`
	Timezone string `mapstructure:"timezone"`

	API APIConfig `mapstructure:"api"`

	// Order volume by day-of-week category.
	WeekdayOrders  OrderCountRange `mapstructure:"weekday_orders"`
	FridayOrders   OrderCountRange `mapstructure:"friday_orders"`
	SaturdayOrders OrderCountRange `mapstructure:"saturday_orders"`
	SundayOrders   OrderCountRange `mapstructure:"sunday_orders"`

	MealPeriods map[MealPeriod]MealPeriodConfig `mapstructure:"meal_periods"`

	Gates     Gates               `mapstructure:"gates"`
	TipRanges map[string]TipRange `mapstructure:"tip_ranges"`

	// FlatTaxRatePercent is the fallback when per-item tax associations
	// compute to zero.
	FlatTaxRatePercent float64 `mapstructure:"flat_tax_rate_percent"`

	AutoGratuityPartySize  int     `mapstructure:"auto_gratuity_party_size"`
	AutoGratuityPercentage int64   `mapstructure:"auto_gratuity_percentage"`
	LargePartyTipFloor     int     `mapstructure:"large_party_tip_floor"`
	RefundPercentage       float64 `mapstructure:"refund_percentage"`
	CashPreferenceCeiling  int64   `mapstructure:"cash_preference_ceiling"` // minor units

	DefinitionCacheTTL     time.Duration `mapstructure:"definition_cache_ttl"`
	DefinitionCacheEntries int           `mapstructure:"definition_cache_entries"`

	// Audit output.
	AuditDestination string             `mapstructure:"audit_destination"` // none|console|file|kafka|postgres|parquet
	OutputPath       string             `mapstructure:"output_path"`
	OutputFolder     string             `mapstructure:"output_folder"`
	KafkaBrokerList  string             `mapstructure:"kafka_broker_list"`
	Database         DatabaseConfig     `mapstructure:"database"`
	CloudStorage     CloudStorageConfig `mapstructure:"cloud_storage"`
	UploadToCloud    bool               `mapstructure:"upload_to_cloud"`
}

// LoadConfig initializes and reads the configuration using Viper.
func LoadConfig(cfgFile string) (*Config, error) {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath("examples")
		viper.AddConfigPath(".")
		viper.SetConfigName("config")
		viper.SetConfigType("json")
	}

	viper.AutomaticEnv()
	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		// A missing default config file is fine; defaults and flags cover
		// everything. An explicitly named file must exist.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && cfgFile != "" {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	decoderConfigOption := viper.DecoderConfigOption(func(dc *mapstructure.DecoderConfig) {
		dc.DecodeHook = mapstructure.ComposeDecodeHookFunc(
			dc.DecodeHook,
			mapstructure.StringToTimeHookFunc(time.RFC3339),
			mapstructure.StringToTimeDurationHookFunc(),
		)
	})
	if err := viper.Unmarshal(&config, decoderConfigOption); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %w", err)
	}

	if len(config.MealPeriods) == 0 {
		config.MealPeriods = DefaultMealPeriods()
	}
	if len(config.TipRanges) == 0 {
		config.TipRanges = DefaultTipRanges()
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// DefaultTipRanges returns the per-dining-option tip percentage ranges.
func DefaultTipRanges() map[string]TipRange {
	return map[string]TipRange{
		DiningHere:     {Min: 15, Max: 25},
		DiningToGo:     {Min: 0, Max: 15},
		DiningDelivery: {Min: 10, Max: 20},
	}
}

// DefaultGates returns the built-in probability gates.
func DefaultGates() Gates {
	return Gates{
		TimeBasedDiscount: 0.90,
		LoyaltyDiscount:   0.15,
		ComboDiscount:     0.12,
		PromoCode:         0.08,
		LineItemDiscount:  0.10,
		ThresholdDiscount: 0.20,
		LegacyDiscount:    0.05,

		CustomerAssigned: 0.60,
		CustomerVIP:      0.05,
		LineItemNote:     0.15,
		MultiQuantity:    0.30,
		ModifierAttach:   0.30,
		OptionalModifier: 0.50,
		TakeoutZeroTip:   0.30,
		GiftCardPayment:  0.10,
		SplitDineInParty: 0.25,
		SplitBase:        0.05,
		EvenSplit:        0.70,
		CashPreference:   0.40,
	}
}

func setDefaults() {
	viper.SetDefault("seed", 0)
	viper.SetDefault("timezone", "America/New_York")
	viper.SetDefault("weekday_orders", map[string]int{"min": 40, "max": 70})
	viper.SetDefault("friday_orders", map[string]int{"min": 70, "max": 110})
	viper.SetDefault("saturday_orders", map[string]int{"min": 90, "max": 140})
	viper.SetDefault("sunday_orders", map[string]int{"min": 60, "max": 100})
	viper.SetDefault("flat_tax_rate_percent", 8.0)
	viper.SetDefault("auto_gratuity_party_size", 6)
	viper.SetDefault("auto_gratuity_percentage", 18)
	viper.SetDefault("large_party_tip_floor", 18)
	viper.SetDefault("refund_percentage", 5.0)
	viper.SetDefault("cash_preference_ceiling", 2000)
	viper.SetDefault("definition_cache_ttl", "5m")
	viper.SetDefault("definition_cache_entries", 16)
	viper.SetDefault("audit_destination", "console")
	viper.SetDefault("output_path", "output")
	viper.SetDefault("output_folder", "audit")
	viper.SetDefault("kafka_broker_list", "localhost:9092")
	viper.SetDefault("api.base_url", "https://sandbox.dev.clover.com")
	viper.SetDefault("api.request_timeout_secs", 30)

	g := DefaultGates()
	viper.SetDefault("gates.time_based_discount", g.TimeBasedDiscount)
	viper.SetDefault("gates.loyalty_discount", g.LoyaltyDiscount)
	viper.SetDefault("gates.combo_discount", g.ComboDiscount)
	viper.SetDefault("gates.promo_code", g.PromoCode)
	viper.SetDefault("gates.line_item_discount", g.LineItemDiscount)
	viper.SetDefault("gates.threshold_discount", g.ThresholdDiscount)
	viper.SetDefault("gates.legacy_discount", g.LegacyDiscount)
	viper.SetDefault("gates.customer_assigned", g.CustomerAssigned)
	viper.SetDefault("gates.customer_vip", g.CustomerVIP)
	viper.SetDefault("gates.line_item_note", g.LineItemNote)
	viper.SetDefault("gates.multi_quantity", g.MultiQuantity)
	viper.SetDefault("gates.modifier_attach", g.ModifierAttach)
	viper.SetDefault("gates.optional_modifier", g.OptionalModifier)
	viper.SetDefault("gates.takeout_zero_tip", g.TakeoutZeroTip)
	viper.SetDefault("gates.gift_card_payment", g.GiftCardPayment)
	viper.SetDefault("gates.split_dine_in_party", g.SplitDineInParty)
	viper.SetDefault("gates.split_base", g.SplitBase)
	viper.SetDefault("gates.even_split", g.EvenSplit)
	viper.SetDefault("gates.cash_preference", g.CashPreference)
}

// Validate enforces the structural weight invariants: meal-period weights sum
// to 100, and every period's dining-option weights sum to 100.
func (cfg *Config) Validate() error {
	totalWeight := 0
	for _, period := range AllMealPeriods {
		pc, ok := cfg.MealPeriods[period]
		if !ok {
			return fmt.Errorf("meal period %q missing from configuration", period)
		}
		totalWeight += pc.Weight

		diningTotal := 0
		for _, w := range pc.DiningWeights {
			diningTotal += w
		}
		if diningTotal != 100 {
			return fmt.Errorf("dining-option weights for %q sum to %d, want 100", period, diningTotal)
		}
	}
	if totalWeight != 100 {
		return fmt.Errorf("meal-period weights sum to %d, want 100", totalWeight)
	}
	if cfg.WeekdayOrders.Max < cfg.WeekdayOrders.Min {
		return fmt.Errorf("weekday order range inverted: min %d > max %d", cfg.WeekdayOrders.Min, cfg.WeekdayOrders.Max)
	}
	return nil
}
