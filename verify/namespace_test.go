package verify

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/powlib/sim"
)

var _ = Describe("Namespace", func() {
	It("should match a subset", func() {
		n := Namespace{"a": 1, "b": "two"}
		o := Namespace{"a": 1, "b": "two", "c": 3}

		Expect(n.IsSubsetOf(o)).To(BeTrue())
		Expect(o.IsSubsetOf(n)).To(BeFalse())
	})

	It("should not match a subset with a differing value", func() {
		n := Namespace{"a": 1}
		o := Namespace{"a": 2, "b": 3}

		Expect(n.IsSubsetOf(o)).To(BeFalse())
	})

	It("should treat an empty namespace as a subset of anything", func() {
		Expect(Namespace{}.IsSubsetOf(Namespace{"a": 1})).To(BeTrue())
		Expect(Namespace{}.IsSubsetOf(Namespace{})).To(BeTrue())
	})

	It("should compare equal regardless of attribute order", func() {
		n := Namespace{"a": 1, "b": 2}
		o := Namespace{"b": 2, "a": 1}

		Expect(n.IsEqualTo(o)).To(BeTrue())
		Expect(o.IsEqualTo(n)).To(BeTrue())
	})

	It("should not compare equal to a strict superset", func() {
		n := Namespace{"a": 1}
		o := Namespace{"a": 1, "b": 2}

		Expect(n.IsEqualTo(o)).To(BeFalse())
		Expect(o.IsEqualTo(n)).To(BeFalse())
	})

	It("should compare nested values deeply", func() {
		n := Namespace{"v": sim.ValueOf(8, 0xAA)}
		o := Namespace{"v": sim.ValueOf(8, 0xAA)}

		Expect(n.IsEqualTo(o)).To(BeTrue())
	})

	It("should report its size", func() {
		Expect(Namespace{}.Size()).To(Equal(0))
		Expect(Namespace{"a": 1, "b": 2}.Size()).To(Equal(2))
	})

	It("should read attributes as unsigned integers", func() {
		n := Namespace{
			"i":  7,
			"u":  uint64(9),
			"v":  sim.ValueOf(8, 0x42),
			"x":  sim.NewValue(8),
			"s":  "nope",
			"nb": nil,
		}

		u, ok := n.Uint("i")
		Expect(ok).To(BeTrue())
		Expect(u).To(Equal(uint64(7)))

		u, ok = n.Uint("u")
		Expect(ok).To(BeTrue())
		Expect(u).To(Equal(uint64(9)))

		u, ok = n.Uint("v")
		Expect(ok).To(BeTrue())
		Expect(u).To(Equal(uint64(0x42)))

		_, ok = n.Uint("x")
		Expect(ok).To(BeFalse())

		_, ok = n.Uint("s")
		Expect(ok).To(BeFalse())

		_, ok = n.Uint("nb")
		Expect(ok).To(BeFalse())

		_, ok = n.Uint("absent")
		Expect(ok).To(BeFalse())
	})

	It("should render attributes in name order", func() {
		n := Namespace{"b": 2, "a": 1}

		Expect(n.String()).To(Equal("Namespace((a=1)(b=2))"))
	})
})
