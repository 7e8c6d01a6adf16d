// suzy_state.go - SuzyState save-state snapshot

// SuzyState is the serializable register file named in spec.md section 3
// ("Suzy state"). The halted/spriteGoing pair is runtime-only transient
// state (true only mid sprite-chain, which never spans a save point since
// StartSpriteChain runs to completion before returning control), so it is
// reset rather than carried across RestoreState.
package main

type SuzyState struct {
	Math SuzyMathState

	SprCtl0, SprCtl1, SprColl byte
	ScbNext                   uint16
	Joystick, Switches        byte

	CollisionBuffer [16]byte

	MathSigned     bool
	MathAccumulate bool
	LeftHand       bool
}

func (s *Suzy) State() SuzyState {
	return SuzyState{
		Math:            s.Math.State(),
		SprCtl0:         s.sprCtl0,
		SprCtl1:         s.sprCtl1,
		SprColl:         s.sprColl,
		ScbNext:         s.scbNext,
		Joystick:        s.joystick,
		Switches:        s.switches,
		CollisionBuffer: s.CollisionBuffer,
		MathSigned:      s.mathSigned,
		MathAccumulate:  s.mathAccumulate,
		LeftHand:        s.leftHand,
	}
}

func (s *Suzy) RestoreState(st SuzyState) {
	s.Math.RestoreState(st.Math)
	s.sprCtl0, s.sprCtl1, s.sprColl = st.SprCtl0, st.SprCtl1, st.SprColl
	s.scbNext = st.ScbNext
	s.joystick, s.switches = st.Joystick, st.Switches
	s.CollisionBuffer = st.CollisionBuffer
	s.mathSigned = st.MathSigned
	s.mathAccumulate = st.MathAccumulate
	s.leftHand = st.LeftHand
	s.spriteGoing = false
	s.halted = false
	s.chainRequested = false
}
