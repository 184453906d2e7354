package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	App            App            `mapstructure:",squash"`
	Server         Server         `mapstructure:",squash"`
	History        History        `mapstructure:",squash"`
	Square         Square         `mapstructure:",squash"`
	VisualCrossing VisualCrossing `mapstructure:",squash"`
	Meteostat      Meteostat      `mapstructure:",squash"`
	SalesSync      SalesSync      `mapstructure:",squash"`
	WeatherSync    WeatherSync    `mapstructure:",squash"`
	ReportMerge    ReportMerge    `mapstructure:",squash"`
	Influx         Influx         `mapstructure:",squash"`
	Auth           Auth           `mapstructure:",squash"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
}

type Server struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
}

// History holds the paths of the append-only history files, the seed date
// used when a file does not exist yet, and the store timezone that decides
// where one recorded day ends and the next begins for every provider.
type History struct {
	SalesPath     string `mapstructure:"history_sales_path"`
	WeatherPath   string `mapstructure:"history_weather_path"`
	MeteostatPath string `mapstructure:"history_meteostat_path"`
	OutputDir     string `mapstructure:"history_output_dir"`
	SeedDate      string `mapstructure:"history_seed_date"`
	Timezone      string `mapstructure:"history_timezone"`
}

type Square struct {
	BaseURL     string `mapstructure:"square_base_url"`
	Version     string `mapstructure:"square_version"`
	AccessToken string `mapstructure:"square_access_token"`
	LocationID  string `mapstructure:"square_location_id"`
}

type VisualCrossing struct {
	URL     string `mapstructure:"visual_crossing_url"`
	APIKey  string `mapstructure:"visual_crossing_key"`
	Zipcode string `mapstructure:"visual_crossing_zipcode"`
}

// Meteostat identifies the weather station point the way the Meteostat API
// expects it: coordinates plus altitude in meters.
type Meteostat struct {
	URL       string  `mapstructure:"meteostat_url"`
	APIKey    string  `mapstructure:"meteostat_key"`
	Latitude  float64 `mapstructure:"meteostat_latitude"`
	Longitude float64 `mapstructure:"meteostat_longitude"`
	Altitude  int     `mapstructure:"meteostat_altitude"`
}

type SalesSync struct {
	CronSchedule        string `mapstructure:"sales_sync_cron"`
	RequestDelaySeconds int    `mapstructure:"sales_sync_request_delay_seconds"`
	Enabled             bool   `mapstructure:"sales_sync_enabled"`
}

type WeatherSync struct {
	CronSchedule string `mapstructure:"weather_sync_cron"`
	Enabled      bool   `mapstructure:"weather_sync_enabled"`
}

// ReportMerge configures the one-shot merge of yearly report summary exports.
type ReportMerge struct {
	InputFiles []string `mapstructure:"report_merge_input_files"`
	OutputDir  string   `mapstructure:"report_merge_output_dir"`
}

type Influx struct {
	Endpoint string `mapstructure:"influx_endpoint"`
	Username string `mapstructure:"influx_username"`
	Password string `mapstructure:"influx_password"`
	Database string `mapstructure:"influx_database"`
	Enabled  bool   `mapstructure:"influx_enabled"`
}

type Auth struct {
	AdminToken string `mapstructure:"admin_token"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)

	viper.SetDefault("HISTORY_SALES_PATH", "data/aggregated_sales.csv")
	viper.SetDefault("HISTORY_WEATHER_PATH", "data/weather_visual_crossing.csv")
	viper.SetDefault("HISTORY_METEOSTAT_PATH", "data/weather_meteostat.csv")
	viper.SetDefault("HISTORY_OUTPUT_DIR", "output")
	viper.SetDefault("HISTORY_SEED_DATE", "2022-11-01") // first day the store used Square
	viper.SetDefault("HISTORY_TIMEZONE", "America/Los_Angeles")

	viper.SetDefault("SQUARE_BASE_URL", "https://connect.squareup.com")
	viper.SetDefault("SQUARE_VERSION", "v2")
	viper.SetDefault("SQUARE_ACCESS_TOKEN", "your_access_token") // ONLY LOCAL
	viper.SetDefault("SQUARE_LOCATION_ID", "")

	viper.SetDefault("VISUAL_CROSSING_URL", "https://weather.visualcrossing.com/VisualCrossingWebServices/rest/services/timeline")
	viper.SetDefault("VISUAL_CROSSING_KEY", "")
	viper.SetDefault("VISUAL_CROSSING_ZIPCODE", "94553")

	viper.SetDefault("METEOSTAT_URL", "https://meteostat.p.rapidapi.com")
	viper.SetDefault("METEOSTAT_KEY", "")
	viper.SetDefault("METEOSTAT_LATITUDE", 38.0194)
	viper.SetDefault("METEOSTAT_LONGITUDE", -122.1341)
	viper.SetDefault("METEOSTAT_ALTITUDE", 135)

	viper.SetDefault("SALES_SYNC_CRON", "0 3 * * *") // every day at 3am
	viper.SetDefault("SALES_SYNC_REQUEST_DELAY_SECONDS", 1)
	viper.SetDefault("SALES_SYNC_ENABLED", false)

	viper.SetDefault("WEATHER_SYNC_CRON", "0 4 * * *") // every day at 4am
	viper.SetDefault("WEATHER_SYNC_ENABLED", false)

	viper.SetDefault("REPORT_MERGE_INPUT_FILES", "")
	viper.SetDefault("REPORT_MERGE_OUTPUT_DIR", "data")

	viper.SetDefault("INFLUX_ENDPOINT", "http://localhost:8086")
	viper.SetDefault("INFLUX_USERNAME", "")
	viper.SetDefault("INFLUX_PASSWORD", "")
	viper.SetDefault("INFLUX_DATABASE", "sales")
	viper.SetDefault("INFLUX_ENABLED", false)

	viper.SetDefault("ADMIN_TOKEN", "")

	viper.SetDefault("LOG_LEVEL", "debug")
}

func NewConfig() (*Config, error) {
	// Load the .env file first so viper.AutomaticEnv can pick the values up.
	loadEnvFile() // ONLY LOCAL

	config := &Config{}

	SetDefaults()

	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logrus.Info("Using variables loaded by godotenv (viper could not read .env): ", err)
	}

	err := viper.Unmarshal(&config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, err
	}

	return config, nil
}

// loadEnvFile loads the .env file from the usual local development locations.
func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Could not determine the current directory: ", err)
		return
	}

	locations := []string{
		filepath.Join(cwd, ".env"),
		filepath.Join(filepath.Dir(cwd), ".env"),
		filepath.Join(cwd, "../.env"),
	}

	for _, location := range locations {
		if err := godotenv.Load(location); err == nil {
			logrus.Info(".env file loaded from: ", location)
			return
		}
	}
}
