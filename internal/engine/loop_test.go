package engine_test

import (
	"context"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/physlab/internal/engine"
	"github.com/san-kum/physlab/internal/physics"
)

var _ = Describe("Frame loop", func() {
	var (
		clock *engine.ManualClock
		e     *engine.Engine
	)

	ballY := func() float64 {
		obj, ok := e.Object("ball")
		Expect(ok).To(BeTrue())
		return obj.Position().Y
	}

	BeforeEach(func() {
		clock = engine.NewManualClock()
		e = engine.New(engine.WithClock(clock))
		Expect(e.AddObject("ball", physics.TypeMovingObject, physics.ObjectConfig{})).To(Succeed())
		Expect(e.AddForce("g", physics.Force{
			Type:       physics.ForceGravity,
			Enabled:    true,
			Attributes: physics.ForceAttributes{Magnitude: 10, Direction: 90},
		})).To(Succeed())
	})

	Context("when stopped", func() {
		It("ignores ticks", func() {
			clock.Advance(10 * time.Millisecond)
			Expect(e.Tick()).To(BeFalse())
			Expect(ballY()).To(Equal(0.0))
			Expect(e.Frames()).To(BeZero())
		})

		It("treats repeated stops as a no-op", func() {
			e.Stop()
			e.Stop()
			Expect(e.Running()).To(BeFalse())
			Expect(e.State()).To(HaveLen(1))
			Expect(e.Forces()).To(HaveLen(1))
		})
	})

	Context("when started", func() {
		BeforeEach(func() {
			e.Start()
		})

		It("runs no physics on the starting frame", func() {
			Expect(e.Running()).To(BeTrue())
			Expect(e.Frames()).To(BeZero())
		})

		It("steps by the elapsed clock time", func() {
			clock.Advance(10 * time.Millisecond)
			Expect(e.Tick()).To(BeTrue())

			Expect(e.Frames()).To(Equal(1))
			Expect(e.Time()).To(BeNumerically("~", 0.010, 1e-12))
			Expect(ballY()).To(BeNumerically("~", 10*0.01*0.01, 1e-12))
		})

		It("caps long gaps at the max step", func() {
			clock.Advance(2 * time.Second)
			e.Tick()

			Expect(e.Time()).To(BeNumerically("~", engine.DefaultMaxStep, 1e-12))
		})

		It("reschedules without work when no time has passed", func() {
			Expect(e.Tick()).To(BeTrue())
			Expect(e.Frames()).To(BeZero())
		})

		It("stops scheduling once stopped", func() {
			e.Stop()
			clock.Advance(10 * time.Millisecond)
			Expect(e.Tick()).To(BeFalse())
			Expect(e.Frames()).To(BeZero())
		})

		It("does not catch up time lost while stopped", func() {
			clock.Advance(10 * time.Millisecond)
			e.Tick()
			e.Stop()

			clock.Advance(time.Hour)
			e.Start()
			clock.Advance(5 * time.Millisecond)
			e.Tick()

			Expect(e.Time()).To(BeNumerically("~", 0.015, 1e-12))
		})

		It("empties the scene on reset", func() {
			e.Reset()
			Expect(e.Running()).To(BeFalse())
			Expect(e.State()).To(BeEmpty())
			Expect(e.Forces()).To(BeEmpty())
		})
	})

	Describe("Drive", func() {
		It("returns immediately when the engine is not running", func() {
			Expect(engine.Drive(context.Background(), e, time.Millisecond)).To(Succeed())
		})

		It("stops the engine when the context ends", func() {
			e.Start()
			ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
			defer cancel()

			err := engine.Drive(ctx, e, time.Millisecond)
			Expect(err).To(MatchError(context.DeadlineExceeded))
			Expect(e.Running()).To(BeFalse())
		})
	})
})
