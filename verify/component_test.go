package verify

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/powlib/sim"
)

var _ = Describe("Component", func() {
	It("should refuse a nil interface", func() {
		Expect(func() { NewComponent(nil) }).To(Panic())
	})

	It("should hold on to its interface", func() {
		engine := sim.NewEngine()
		sig := sim.NewSignal(engine, "d", 1)
		iface, err := NewInterface(nil, map[string]*sim.Signal{"d": sig})
		Expect(err).ToNot(HaveOccurred())

		c := NewComponent(iface)

		Expect(c.Interface()).To(BeIdenticalTo(iface))
	})
})

var _ = Describe("Driver", func() {
	var (
		engine *sim.Engine
		driver *Driver
	)

	BeforeEach(func() {
		engine = sim.NewEngine()
		sig := sim.NewSignal(engine, "d", 8)
		iface, err := NewInterface(nil, map[string]*sim.Signal{"d": sig})
		Expect(err).ToNot(HaveOccurred())

		driver = NewDriver(engine, iface)
	})

	It("should start drained", func() {
		Expect(driver.Pending()).To(BeFalse())

		err := engine.Run("root", func(a *sim.Activity) {
			driver.Flush(a)
		})
		Expect(err).ToNot(HaveOccurred())
	})

	It("should queue writes in order and wake the drive loop", func() {
		driver.Write(Transaction{"d": 1})
		driver.Write(Transaction{"d": 2})

		Expect(driver.Wake().IsSet()).To(BeTrue())
		Expect(driver.Pending()).To(BeTrue())
		Expect(driver.Next()).To(Equal(Transaction{"d": 1}))
		Expect(driver.Next()).To(Equal(Transaction{"d": 2}))
		Expect(driver.Next()).To(BeNil())
		Expect(driver.Pending()).To(BeFalse())
	})

	It("should block flush until the drive loop drains the queue", func() {
		driver.Write(Transaction{"d": 1})

		engine.Spawn("drive", func(a *sim.Activity) {
			a.Wait(sim.Timer(3e-9))
			for driver.Pending() {
				driver.Next()
			}
			driver.NotifyDrained()
		})

		err := engine.Run("root", func(a *sim.Activity) {
			driver.Flush(a)
		})

		Expect(err).ToNot(HaveOccurred())
		Expect(float64(engine.CurrentTime())).To(BeNumerically("~", 3e-9, 1e-12))
	})

	It("should move inport data into the outstanding queue", func() {
		driver.InPort().Write(Transaction{"d": 5})
		DefaultQueue().Run()

		Expect(driver.Pending()).To(BeTrue())
		Expect(driver.Next()).To(Equal(Transaction{"d": 5}))
	})
})

var _ = Describe("Monitor", func() {
	It("should publish on its outport", func() {
		engine := sim.NewEngine()
		sig := sim.NewSignal(engine, "d", 8)
		iface, err := NewInterface(nil, map[string]*sim.Signal{"d": sig})
		Expect(err).ToNot(HaveOccurred())

		m := NewMonitor(iface)
		sink := newCollector(DefaultQueue())
		m.OutPort().Connect(sink.in)

		m.OutPort().WriteAndRun(Transaction{"d": 1})

		Expect(sink.got).To(HaveLen(1))
	})
})
