// main.go

package main

import (
	"context"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

type config struct {
	MongoURI  string
	MongoDB   string
	Port      string
	JWTSecret string
}

func loadConfig() config {
	cfg := config{
		MongoURI:  os.Getenv("MONGO_URI"),
		MongoDB:   os.Getenv("MONGO_DB"),
		Port:      os.Getenv("PORT"),
		JWTSecret: os.Getenv("JWT_SECRET"),
	}
	if cfg.MongoURI == "" {
		cfg.MongoURI = os.Getenv("MONGO_URL")
	}
	if cfg.MongoURI == "" {
		cfg.MongoURI = "mongodb://localhost:27017"
	}
	if cfg.MongoDB == "" {
		cfg.MongoDB = "shopmart"
	}
	if cfg.Port == "" {
		cfg.Port = "8000"
	}
	if cfg.JWTSecret == "" {
		cfg.JWTSecret = "SECRET"
	}
	return cfg
}

type server struct {
	stores
	cartSvc   *cartService
	orderSvc  *orderService
	log       *zap.Logger
	jwtSecret []byte
}

func newServer(st stores, log *zap.Logger, jwtSecret []byte) *server {
	return &server{
		stores:    st,
		cartSvc:   &cartService{carts: st.carts, products: st.products, log: log},
		orderSvc:  &orderService{orders: st.orders, carts: st.carts, log: log},
		log:       log,
		jwtSecret: jwtSecret,
	}
}

func (s *server) routes(r *gin.Engine) {
	r.GET("/", func(c *gin.Context) {
		c.String(200, "Backend is Running!")
	})

	api := r.Group("/api")
	{
		api.POST("/login", s.login)

		users := api.Group("/users")
		{
			users.GET("/", s.listUsers)
			users.GET("/:id", s.getUser)
			users.POST("/", s.createUser)
			users.PUT("/:id", s.updateUser)
			users.DELETE("/:id", s.deleteUser)
		}

		products := api.Group("/products")
		{
			products.GET("/", s.listProducts)
			products.GET("/:id", s.getProduct)
			products.POST("/", s.createProduct)
			products.PUT("/:id", s.updateProduct)
			products.DELETE("/:id", s.deleteProduct)
		}

		carts := api.Group("/carts")
		{
			carts.GET("/", s.listCarts)
			carts.POST("/", s.createCart)
			carts.DELETE("/clear/:userId", s.clearCart)
			carts.GET("/:id", s.getCart)
			carts.PUT("/:id", s.updateCart)
			carts.DELETE("/:id", s.deleteCart)
		}

		orders := api.Group("/orders")
		{
			orders.GET("/", s.listOrders)
			orders.POST("/", s.createOrder)
			orders.GET("/user/:userId", s.listUserOrders)
			orders.GET("/:id", s.getOrder)
			orders.PUT("/:id", s.updateOrder)
			orders.DELETE("/:id", s.deleteOrder)
		}
	}
}

func requestLogger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
		)
	}
}

func main() {
	log, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	cfg := loadConfig()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatal("mongo connect failed", zap.Error(err))
	}
	if err := client.Ping(ctx, nil); err != nil {
		log.Fatal("mongo ping failed", zap.Error(err))
	}
	log.Info("mongo connected", zap.String("db", cfg.MongoDB))

	s := newServer(newMongoStores(client.Database(cfg.MongoDB)), log, []byte(cfg.JWTSecret))

	r := gin.New()
	r.Use(requestLogger(log), gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: false,
	}))
	s.routes(r)

	log.Info("server listening", zap.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}
