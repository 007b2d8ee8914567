package verify

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/powlib/sim"
)

var _ = Describe("Interface", func() {
	var (
		engine *sim.Engine
		clk    *sim.Signal
		addr   *sim.Signal
		data   *sim.Signal
		iface  *Interface
	)

	BeforeEach(func() {
		engine = sim.NewEngine()
		clk = sim.NewSignal(engine, "clk", 1)
		addr = sim.NewSignal(engine, "addr", 16)
		data = sim.NewSignal(engine, "data", 32)

		var err error
		iface, err = NewInterface(
			[]string{"clk"},
			map[string]*sim.Signal{"clk": clk, "addr": addr, "data": data},
		)
		Expect(err).ToNot(HaveOccurred())
	})

	It("should refuse a missing control signal", func() {
		_, err := NewInterface(
			[]string{"clk", "rst"},
			map[string]*sim.Signal{"clk": clk},
		)

		Expect(err).To(HaveOccurred())
	})

	It("should refuse a nil signal handle", func() {
		_, err := NewInterface(
			nil,
			map[string]*sim.Signal{"addr": nil},
		)

		Expect(err).To(HaveOccurred())
	})

	It("should partition control and data signals", func() {
		Expect(iface.Control("clk")).To(BeIdenticalTo(clk))
		Expect(iface.Data("addr")).To(BeIdenticalTo(addr))
		Expect(iface.DataNames()).To(Equal([]string{"addr", "data"}))

		Expect(func() { iface.Control("addr") }).To(Panic())
		Expect(func() { iface.Data("clk") }).To(Panic())
	})

	It("should project a transaction over the data signals", func() {
		trans := iface.Transaction(Transaction{"addr": 0x10, "ignored": 99})

		Expect(trans.Size()).To(Equal(2))
		Expect(trans["addr"]).To(Equal(0x10))
		Expect(trans["data"]).To(BeNil())
		Expect(trans).ToNot(HaveKey("ignored"))
	})

	It("should drive data signals from a transaction", func() {
		iface.Write(Transaction{
			"addr": 0x10,
			"data": uint64(0xCAFEBABE),
			"clk":  1,
		})

		u, ok := addr.Value().Uint()
		Expect(ok).To(BeTrue())
		Expect(u).To(Equal(uint64(0x10)))

		u, ok = data.Value().Uint()
		Expect(ok).To(BeTrue())
		Expect(u).To(Equal(uint64(0xCAFEBABE)))

		Expect(clk.Value().IsKnown()).To(BeFalse())
	})

	It("should leave signals with nil values untouched", func() {
		addr.SetUint(0x20)

		iface.Write(Transaction{"addr": nil, "data": 1})

		u, _ := addr.Value().Uint()
		Expect(u).To(Equal(uint64(0x20)))
	})

	It("should accept a sim.Value of the right width", func() {
		iface.Write(Transaction{"data": sim.ValueOf(32, 7)})

		u, _ := data.Value().Uint()
		Expect(u).To(Equal(uint64(7)))
	})

	It("should reject bad writes loudly", func() {
		Expect(func() {
			iface.Write(Transaction{"nosuch": 1})
		}).To(Panic())

		Expect(func() {
			iface.Write(Transaction{"data": sim.ValueOf(8, 7)})
		}).To(Panic())

		Expect(func() {
			iface.Write(Transaction{"data": -1})
		}).To(Panic())

		Expect(func() {
			iface.Write(Transaction{"data": "seven"})
		}).To(Panic())
	})

	It("should sample every data signal on read", func() {
		addr.SetUint(0x30)
		data.SetUint(0x40)

		trans := iface.Read()

		Expect(trans.Size()).To(Equal(2))
		u, ok := trans.Uint("addr")
		Expect(ok).To(BeTrue())
		Expect(u).To(Equal(uint64(0x30)))
		u, ok = trans.Uint("data")
		Expect(ok).To(BeTrue())
		Expect(u).To(Equal(uint64(0x40)))
	})
})
