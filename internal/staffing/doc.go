// Package staffing projects development-corporation headcount across the
// four project phases (Feasibility, Interim Vehicle, Delivery, Wind Down).
//
// The projection is a pure function of ProjectParameters, Thresholds and
// Options: identical inputs always produce an identical Projection, and every
// parameter change is answered with a full recomputation. Curve shapes live in
// CurveSet tables rather than in control flow so they can be tuned and tested
// on their own.
//
// Inputs are validated at the boundary with Validate and Thresholds.Validate;
// Project itself trusts its arguments.
package staffing
