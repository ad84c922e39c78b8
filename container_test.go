package polinjectum_test

import (
	"errors"
	"sync"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/goleak"

	"github.com/orlyeac/polinjectum"
)

var _ = Describe("Container", func() {
	BeforeEach(func() {
		polinjectum.Reset()

		DeferCleanup(func() {
			polinjectum.Reset()
		})
	})

	It("should register a Singleton producer", func() {
		err := polinjectum.Register[NameService](polinjectum.Singleton, nameServiceConstructor)
		Expect(err).ShouldNot(HaveOccurred())
	})

	It("should register a Transient producer", func() {
		err := polinjectum.Register[NameService](polinjectum.Transient, nameServiceConstructor)
		Expect(err).ShouldNot(HaveOccurred())
	})

	It("should register a producer returning an error", func() {
		err := polinjectum.Register[NameService](polinjectum.Singleton, func() (NameService, error) {
			return NameProvider("Bob"), nil
		})
		Expect(err).ShouldNot(HaveOccurred())
	})

	It("should refuse an unsupported lifecycle", func() {
		err := polinjectum.Register[NameService](polinjectum.Lifecycle(42), nameServiceConstructor)

		Expect(err).Should(HaveOccurred())
		Expect(err).Should(BeAssignableToTypeOf(polinjectum.LifecycleUnsupportedError("")))
	})

	It("should refuse registering the same contract twice", func() {
		err := polinjectum.Register[NameService](polinjectum.Singleton, nameServiceConstructor)
		Expect(err).ShouldNot(HaveOccurred())

		err = polinjectum.Register[NameService](polinjectum.Singleton, nameServiceConstructor)

		Expect(err).Should(HaveOccurred())
		Expect(err).Should(MatchError(polinjectum.ErrDuplicateRegistration))
	})

	It("should refuse a duplicate registration regardless of lifecycle", func() {
		err := polinjectum.Register[NameService](polinjectum.Singleton, nameServiceConstructor)
		Expect(err).ShouldNot(HaveOccurred())

		err = polinjectum.Register[NameService](polinjectum.Transient, nameServiceConstructor)

		Expect(err).Should(MatchError(polinjectum.ErrDuplicateRegistration))
	})

	It("should allow the same contract under different qualifiers", func() {
		err := polinjectum.Register[CacheService](polinjectum.Singleton, memoryCacheConstructor)
		Expect(err).ShouldNot(HaveOccurred())

		err = polinjectum.Register[CacheService](polinjectum.Singleton, redisCacheConstructor,
			polinjectum.WithQualifier("redis"))
		Expect(err).ShouldNot(HaveOccurred())
	})

	It("should refuse registering the same (contract, qualifier) twice", func() {
		err := polinjectum.Register[CacheService](polinjectum.Singleton, redisCacheConstructor,
			polinjectum.WithQualifier("redis"))
		Expect(err).ShouldNot(HaveOccurred())

		err = polinjectum.Register[CacheService](polinjectum.Transient, redisCacheConstructor,
			polinjectum.WithQualifier("redis"))

		Expect(err).Should(MatchError(polinjectum.ErrDuplicateRegistration))
	})

	It("should refuse a producer that is not a function", func() {
		err := polinjectum.Register[NameService](polinjectum.Singleton, 42)

		Expect(err).Should(HaveOccurred())
		Expect(err).Should(BeAssignableToTypeOf(new(polinjectum.RegistrationError)))
		Expect(err).Should(MatchError(polinjectum.ErrProducerNotAFunction))
	})

	It("should refuse a variadic producer", func() {
		err := polinjectum.Register[NameService](polinjectum.Singleton, func(names ...string) NameService {
			return NameProvider("Bob")
		})

		Expect(err).Should(MatchError(polinjectum.ErrVariadicProducer))
	})

	It("should refuse a producer returning only an error", func() {
		err := polinjectum.Register[NameService](polinjectum.Singleton, func() error { return nil })

		Expect(err).Should(BeAssignableToTypeOf(new(polinjectum.RegistrationError)))
		Expect(errors.Unwrap(err)).Should(BeAssignableToTypeOf(new(polinjectum.ProducerTemplateError)))
	})

	It("should refuse a producer with too many results", func() {
		err := polinjectum.Register[NameService](polinjectum.Singleton, func() (NameService, func(), error) {
			return NameProvider("Bob"), func() {}, nil
		})

		Expect(errors.Unwrap(err)).Should(BeAssignableToTypeOf(new(polinjectum.ProducerTemplateError)))
	})

	It("should refuse a producer that does not yield the contract type", func() {
		err := polinjectum.Register[NameService](polinjectum.Singleton, func() int { return 42 })

		Expect(err).Should(MatchError(polinjectum.ErrProducerWrongType))
	})

	It("should synthesize a producer from a struct contract on nil producer", func() {
		err := polinjectum.Register[NameService](polinjectum.Singleton, nameServiceConstructor)
		Expect(err).ShouldNot(HaveOccurred())

		err = polinjectum.Register[*ServiceWithPublicFields](polinjectum.Transient, nil)
		Expect(err).ShouldNot(HaveOccurred())

		service, err := polinjectum.Resolve[*ServiceWithPublicFields]()

		Expect(err).ShouldNot(HaveOccurred())
		Expect(service.Hello()).To(Equal("Hello Bob"))
	})

	It("should refuse a nil producer for an interface contract", func() {
		err := polinjectum.Register[NameService](polinjectum.Singleton, nil)

		Expect(err).Should(MatchError(polinjectum.ErrNotConstructible))
	})

	It("should return the same process-wide container on repeated access", func() {
		c1 := polinjectum.Default()
		c2 := polinjectum.Default()

		Expect(c1).To(BeIdenticalTo(c2))
	})

	It("should return the same container under concurrent first access", func() {
		polinjectum.Reset()

		var wg sync.WaitGroup
		containers := make([]polinjectum.Container, 16)

		for i := range containers {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				containers[i] = polinjectum.Default()
			}(i)
		}

		wg.Wait()

		for _, c := range containers {
			Expect(c).To(BeIdenticalTo(containers[0]))
		}

		err := goleak.Find(
			goleak.IgnoreTopFunction(
				"github.com/onsi/ginkgo/v2/internal.(*Suite).runNode",
			),
			goleak.IgnoreTopFunction(
				"github.com/onsi/ginkgo/v2/internal/interrupt_handler.(*InterruptHandler).registerForInterrupts.func2",
			),
			goleak.IgnoreAnyFunction(
				"github.com/onsi/ginkgo/v2/internal.RegisterForProgressSignal.func1",
			),
		)
		Expect(err).ShouldNot(HaveOccurred())
	})

	It("should build a fresh empty container after Reset", func() {
		err := polinjectum.Register[NameService](polinjectum.Singleton, nameServiceConstructor)
		Expect(err).ShouldNot(HaveOccurred())

		before := polinjectum.Default()
		polinjectum.Reset()
		after := polinjectum.Default()

		Expect(after).NotTo(BeIdenticalTo(before))

		_, err = polinjectum.Resolve[NameService]()

		Expect(err).Should(HaveOccurred())
		Expect(err).Should(BeAssignableToTypeOf(new(polinjectum.ResolutionError)))
		Expect(errors.Unwrap(err)).Should(BeAssignableToTypeOf(new(polinjectum.MissingRegistrationError)))
	})
})
