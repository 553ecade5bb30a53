package raster

import "testing"

func TestSampleMaskSetAndTest(t *testing.T) {
	var m SampleMask
	m.Set(1, 2)

	if !m.Test(1, 2) {
		t.Error("Test(1, 2) should report covered after Set(1, 2)")
	}
	if m.Test(1, 0) {
		t.Error("Test(1, 0) should report uncovered")
	}
	if m.Test(0, 2) {
		t.Error("Test(0, 2) should report uncovered for a different lane")
	}
}

func TestSampleMaskLaneCovered(t *testing.T) {
	var m SampleMask
	if m.LaneCovered(0) {
		t.Error("empty mask should cover no lanes")
	}
	m.Set(3, 0)
	if !m.LaneCovered(3) {
		t.Error("lane 3 should be covered after setting one of its samples")
	}
	if m.LaneCovered(2) {
		t.Error("lane 2 should remain uncovered")
	}
}

func TestSampleMaskLaneMaskIsolatesLane(t *testing.T) {
	var m SampleMask
	m.Set(0, 0)
	m.Set(0, 3)
	m.Set(1, 1)

	if got := m.LaneMask(0); got != 0b1001 {
		t.Errorf("LaneMask(0) = %04b, want 1001", got)
	}
	if got := m.LaneMask(1); got != 0b0010 {
		t.Errorf("LaneMask(1) = %04b, want 0010", got)
	}
}

func TestSampleMaskAnyAndPopCount(t *testing.T) {
	var m SampleMask
	if m.Any() {
		t.Error("zero-value mask should report Any() == false")
	}
	m.Set(0, 0)
	m.Set(2, 1)
	if !m.Any() {
		t.Error("mask with a set bit should report Any() == true")
	}
	if got := m.PopCount(); got != 2 {
		t.Errorf("PopCount() = %d, want 2", got)
	}
}
