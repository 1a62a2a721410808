package config

import (
	"github.com/spf13/viper"
)

type PortsConfig struct {
	User    string `mapstructure:"user"`
	Vehicle string `mapstructure:"vehicle"`
	Booking string `mapstructure:"booking"`
	Payment string `mapstructure:"payment"`
	Damage  string `mapstructure:"damage"`
	File    string `mapstructure:"file"`
	Gateway string `mapstructure:"gateway"`
}

// ServicesConfig holds the base URLs the services use to reach each other.
// The gateway routing table is built from the same values.
type ServicesConfig struct {
	UserURL    string `mapstructure:"userURL"`
	VehicleURL string `mapstructure:"vehicleURL"`
	BookingURL string `mapstructure:"bookingURL"`
	PaymentURL string `mapstructure:"paymentURL"`
	DamageURL  string `mapstructure:"damageURL"`
	FileURL    string `mapstructure:"fileURL"`
}

type MongoConfig struct {
	URI    string `mapstructure:"uri"`
	DBName string `mapstructure:"dbName"`
}

type JWTConfig struct {
	Secret     string `mapstructure:"secret"`
	Expiration string `mapstructure:"expiration"`
}

type S3Config struct {
	Bucket          string `mapstructure:"bucket"`
	Region          string `mapstructure:"region"`
	AccessKeyID     string `mapstructure:"accessKeyID"`
	SecretAccessKey string `mapstructure:"secretAccessKey"`
}

type GatewayConfig struct {
	UpstreamTimeout string `mapstructure:"upstreamTimeout"`
}

type Config struct {
	Ports    PortsConfig    `mapstructure:"ports"`
	Services ServicesConfig `mapstructure:"services"`
	Mongo    MongoConfig    `mapstructure:"mongo"`
	JWT      JWTConfig      `mapstructure:"jwt"`
	S3       S3Config       `mapstructure:"s3"`
	Gateway  GatewayConfig  `mapstructure:"gateway"`
}

// LoadConfig reads config.yaml from the given path and overlays environment
// variables. A missing file is not an error; env vars alone are enough.
func LoadConfig(path string) (config Config, err error) {
	viper.AddConfigPath(path)
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	viper.AutomaticEnv()

	viper.BindEnv("mongo.uri", "MONGO_URI")
	viper.BindEnv("mongo.dbName", "MONGO_DBNAME")
	viper.BindEnv("jwt.secret", "JWT_SECRET")
	viper.BindEnv("jwt.expiration", "JWT_EXPIRATION")
	viper.BindEnv("ports.user", "USER_SERVICE_PORT")
	viper.BindEnv("ports.vehicle", "VEHICLE_SERVICE_PORT")
	viper.BindEnv("ports.booking", "BOOKING_SERVICE_PORT")
	viper.BindEnv("ports.payment", "PAYMENT_SERVICE_PORT")
	viper.BindEnv("ports.damage", "DAMAGE_SERVICE_PORT")
	viper.BindEnv("ports.file", "FILE_SERVICE_PORT")
	viper.BindEnv("ports.gateway", "GATEWAY_PORT")
	viper.BindEnv("services.userURL", "USER_SERVICE_URL")
	viper.BindEnv("services.vehicleURL", "VEHICLE_SERVICE_URL")
	viper.BindEnv("services.bookingURL", "BOOKING_SERVICE_URL")
	viper.BindEnv("services.paymentURL", "PAYMENT_SERVICE_URL")
	viper.BindEnv("services.damageURL", "DAMAGE_SERVICE_URL")
	viper.BindEnv("services.fileURL", "FILE_SERVICE_URL")
	viper.BindEnv("s3.bucket", "S3_BUCKET")
	viper.BindEnv("s3.region", "S3_REGION")
	viper.BindEnv("s3.accessKeyID", "S3_ACCESS_KEY_ID")
	viper.BindEnv("s3.secretAccessKey", "S3_SECRET_ACCESS_KEY")
	viper.BindEnv("gateway.upstreamTimeout", "GATEWAY_UPSTREAM_TIMEOUT")

	err = viper.ReadInConfig()
	if err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return
		}
	}

	err = viper.Unmarshal(&config)
	if err != nil {
		return
	}

	return
}
