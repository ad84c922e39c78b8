package polinjectum_test

import "fmt"

type NameService interface {
	Name() string
}

type NameProvider string

func (s NameProvider) Name() string {
	return string(s)
}

func nameServiceConstructor() NameService {
	return NameProvider("Bob")
}

type Hero struct {
	name string
}

func (h *Hero) SayHello() string {
	return "Hello, I'm " + h.name
}

func heroConstructor(s NameService) *Hero {
	return &Hero{name: s.Name()}
}

type Logger struct {
	name string
}

func defaultLoggerConstructor() *Logger {
	return &Logger{name: "default"}
}

func auditLoggerConstructor() *Logger {
	return &Logger{name: "audit"}
}

type CacheService interface {
	Store() string
}

type memoryCache struct{}

func (memoryCache) Store() string { return "memory" }

type redisCache struct{}

func (redisCache) Store() string { return "redis" }

func memoryCacheConstructor() CacheService { return memoryCache{} }

func redisCacheConstructor() CacheService { return redisCache{} }

type AppService struct {
	Primary CacheService
	Audit   CacheService `inject:"redis"`
	Skipped string       `inject:"-"`
}

type HelloService interface {
	Hello() string
}

type ServiceWithPublicFields struct {
	Dependency   NameService
	someProperty string
}

func (s *ServiceWithPublicFields) Hello() string {
	return "Hello " + s.Dependency.Name()
}

// mutual cycle fixtures

type PingService struct {
	pong *PongService
}

type PongService struct {
	ping *PingService
}

func pingConstructor(pong *PongService) *PingService {
	return &PingService{pong: pong}
}

func pongConstructor(ping *PingService) *PongService {
	return &PongService{ping: ping}
}

// diamond fixtures: RootService needs LeftService and RightService,
// both of which need SharedService

type SharedService struct {
	id int
}

type LeftService struct {
	shared *SharedService
}

type RightService struct {
	shared *SharedService
}

type RootService struct {
	left  *LeftService
	right *RightService
}

func sharedServiceConstructor(counter *int) func() *SharedService {
	return func() *SharedService {
		*counter++
		return &SharedService{id: *counter}
	}
}

func leftServiceConstructor(shared *SharedService) *LeftService {
	return &LeftService{shared: shared}
}

func rightServiceConstructor(shared *SharedService) *RightService {
	return &RightService{shared: shared}
}

func rootServiceConstructor(left *LeftService, right *RightService) *RootService {
	return &RootService{left: left, right: right}
}

func countingConstructor(counter *int) func() NameService {
	return func() NameService {
		*counter++
		return NameProvider(fmt.Sprintf("attempt %d", *counter))
	}
}
