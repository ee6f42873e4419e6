package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Server  ServerConfig
	MongoDB MongoDBConfig
	Kafka   KafkaConfig
	CORS    CORSConfig
	Log     LogConfig
}

type ServerConfig struct {
	Host string // Адрес хоста (по умолчанию 0.0.0.0)
	Port string // Порт сервера (по умолчанию 5000)
}

type MongoDBConfig struct {
	URI                  string // URI подключения к MongoDB
	Database             string // Имя базы данных
	ReviewsCollection    string // Коллекция отзывов
	WatchlistCollection  string // Коллекция watchlist
	ConnectRetryAttempts int    // Количество попыток подключения при старте
}

type KafkaConfig struct {
	Brokers []string // Список брокеров Kafka (пустой список отключает публикацию событий)
	Topic   string   // Топик для событий REVIEW_CREATED и WATCHLIST_ADDED
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level        string
	LogstashAddr string
}

// Load читает конфигурацию из окружения
// Если рядом лежит .env, переменные из него подхватываются, но не перекрывают уже заданные
func Load() (*Config, error) {
	_ = godotenv.Load()

	return &Config{
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
			Port: getEnv("PORT", "5000"),
		},
		MongoDB: MongoDBConfig{
			URI:                  getEnv("MONGODB_URI", "mongodb://localhost:27017"),
			Database:             getEnv("MONGODB_DATABASE", "ChillGamerDB"),
			ReviewsCollection:    getEnv("REVIEWS_COLLECTION", "reviews"),
			WatchlistCollection:  getEnv("WATCHLIST_COLLECTION", "watchlist"),
			ConnectRetryAttempts: 10,
		},
		Kafka: KafkaConfig{
			Brokers: splitList(os.Getenv("KAFKA_BROKERS")),
			Topic:   getEnv("KAFKA_TOPIC", "chillgamer_events"),
		},
		CORS: CORSConfig{
			AllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		},
		Log: LogConfig{
			Level:        getEnv("LOG_LEVEL", "info"),
			LogstashAddr: os.Getenv("LOGSTASH_ADDR"),
		},
	}, nil
}

func (c *ServerConfig) Address() string {
	return c.Host + ":" + c.Port
}

// Enabled сообщает, настроена ли публикация событий
func (c *KafkaConfig) Enabled() bool {
	return len(c.Brokers) > 0
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func splitList(value string) []string {
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
