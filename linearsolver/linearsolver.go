// Copyright 2010-2024 Google LLC
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package linearsolver solves bounded-variable linear programs with a
// from-scratch log-barrier interior-point method. It is meant as a
// fallback backend with the familiar solver interface on platforms where a
// mature LP library is not available.
//
// The `Solver` struct owns the model and provides helper methods for
// adding variables and constraints. The `Variable`, `Constraint`, and
// `Objective` structs are references to specific parts of the model and
// provide methods for interacting with them. A typical session builds the
// model incrementally, calls Solve, and reads values back through
// `Variable.SolutionValue`.
//
// The backend is intentionally minimal: dense storage, a fixed iteration
// schedule, and no certified infeasibility or unboundedness detection. An
// Optimal status means the iteration budget was exhausted without an
// explicit failure, not that optimality was certified. The method also
// requires the all-ones point to be strictly interior to the constraint
// system; variable lower bounds other than the implicit zero floor are not
// enforced as rows.
package linearsolver

import (
	"errors"
	"fmt"
	"math"
	"time"

	log "github.com/golang/glog"

	"github.com/google/lpbarrier/linearsolver/barrier"
)

// ErrMixedModels holds the error when elements added to a model belong to
// different solvers.
var ErrMixedModels = errors.New("elements are not part of the same model")

// ResultStatus is the outcome of a Solve call.
type ResultStatus int

// The possible outcomes of Solve. This backend only ever produces Optimal,
// Infeasible (for an empty model), or Abnormal (for model misuse);
// Feasible and Unbounded exist for interface compatibility with backends
// that can detect them.
const (
	Optimal ResultStatus = iota
	Feasible
	Infeasible
	Unbounded
	Abnormal
	NotSolved
)

func (rs ResultStatus) String() string {
	switch rs {
	case Optimal:
		return "OPTIMAL"
	case Feasible:
		return "FEASIBLE"
	case Infeasible:
		return "INFEASIBLE"
	case Unbounded:
		return "UNBOUNDED"
	case Abnormal:
		return "ABNORMAL"
	case NotSolved:
		return "NOT_SOLVED"
	}
	return fmt.Sprintf("ResultStatus(%d)", int(rs))
}

type varData struct {
	name     string
	lb, ub   float64
	solution float64
}

type constraintData struct {
	name   string
	lb, ub float64
	// Sparse-by-omission coefficients keyed by variable index; an unset
	// coefficient is 0.
	coeffs map[int32]float64
}

type objectiveData struct {
	coeffs   map[int32]float64
	offset   float64
	maximize bool
}

// Solver owns a mutable linear program and solves it in place. Variables
// and constraints are registered on the solver and referenced through
// index handles, so they are only meaningful with the solver that created
// them.
//
// A Solver is not safe for concurrent use: the builder methods mutate
// shared lists without synchronization and Solve rewrites the solution
// values of every variable.
type Solver struct {
	name string
	vars []*varData
	cons []*constraintData
	obj  objectiveData

	status     ResultStatus
	iterations int
	wallTime   time.Duration

	// The first and only the first error is reported by Solve.
	err error
}

// NewSolver creates an empty model. The name is used in diagnostics only.
func NewSolver(name string) *Solver {
	return &Solver{
		name:   name,
		obj:    objectiveData{coeffs: make(map[int32]float64)},
		status: NotSolved,
	}
}

// Name returns the name the solver was created with.
func (s *Solver) Name() string { return s.name }

// NumVariables returns the number of variables in the model.
func (s *Solver) NumVariables() int { return len(s.vars) }

// NumConstraints returns the number of constraints in the model.
func (s *Solver) NumConstraints() int { return len(s.cons) }

// Iterations returns the total number of inner-loop steps executed by the
// last Solve call.
func (s *Solver) Iterations() int { return s.iterations }

// WallTime returns the elapsed wall time of the last Solve call in
// seconds.
func (s *Solver) WallTime() float64 { return s.wallTime.Seconds() }

// Variable is a reference to a decision variable of a Solver. Its value
// after a successful Solve is read with SolutionValue.
type Variable struct {
	ind int32
	s   *Solver
}

// MakeNumVar creates and registers a continuous variable with the given
// bounds. Use 0 and math.Inf(1) for the default nonnegative variable.
// Names are for diagnostics only and are not checked for uniqueness.
func (s *Solver) MakeNumVar(lb, ub float64, name string) Variable {
	v := Variable{ind: int32(len(s.vars)), s: s}
	s.vars = append(s.vars, &varData{name: name, lb: lb, ub: ub})
	return v
}

// Name returns the name of the variable.
func (v Variable) Name() string { return v.s.vars[v.ind].name }

// Index returns the index of the variable in its solver.
func (v Variable) Index() int { return int(v.ind) }

// Lb returns the lower bound of the variable.
func (v Variable) Lb() float64 { return v.s.vars[v.ind].lb }

// Ub returns the upper bound of the variable.
func (v Variable) Ub() float64 { return v.s.vars[v.ind].ub }

// SolutionValue returns the value of the variable in the last solution.
// It is 0 before the first successful Solve. Coordinates within the
// solver tolerance of zero are reported as exactly 0.
func (v Variable) SolutionValue() float64 { return v.s.vars[v.ind].solution }

// Constraint is a reference to a linear constraint of a Solver, built
// incrementally with SetCoefficient.
type Constraint struct {
	ind int32
	s   *Solver
}

// MakeConstraint creates and registers a constraint lb ≤ expr ≤ ub with an
// empty coefficient mapping. Use math.Inf(-1) or math.Inf(1) to leave a
// side unbounded. Names are for diagnostics only.
func (s *Solver) MakeConstraint(lb, ub float64, name string) Constraint {
	c := Constraint{ind: int32(len(s.cons)), s: s}
	s.cons = append(s.cons, &constraintData{
		name:   name,
		lb:     lb,
		ub:     ub,
		coeffs: make(map[int32]float64),
	})
	return c
}

// Name returns the name of the constraint.
func (c Constraint) Name() string { return c.s.cons[c.ind].name }

// Index returns the index of the constraint in its solver.
func (c Constraint) Index() int { return int(c.ind) }

// Lb returns the lower bound of the constraint.
func (c Constraint) Lb() float64 { return c.s.cons[c.ind].lb }

// Ub returns the upper bound of the constraint.
func (c Constraint) Ub() float64 { return c.s.cons[c.ind].ub }

// SetCoefficient sets the coefficient of the variable in the constraint,
// overwriting any previous value.
func (c Constraint) SetCoefficient(v Variable, coeff float64) {
	if !c.s.checkSameModelAndSetErrorf(v.s, "invalid variable %v added to Constraint %v", v.ind, c.ind) {
		return
	}
	c.s.cons[c.ind].coeffs[v.ind] = coeff
}

// Coefficient returns the coefficient of the variable in the constraint,
// or 0 if it was never set.
func (c Constraint) Coefficient(v Variable) float64 {
	return c.s.cons[c.ind].coeffs[v.ind]
}

// Objective is a reference to the linear objective of a Solver. The
// default objective is an empty minimization.
type Objective struct {
	s *Solver
}

// Objective returns the model's objective.
func (s *Solver) Objective() Objective { return Objective{s: s} }

// SetCoefficient sets the coefficient of the variable in the objective,
// overwriting any previous value.
func (o Objective) SetCoefficient(v Variable, coeff float64) {
	if !o.s.checkSameModelAndSetErrorf(v.s, "invalid variable %v added to the Objective", v.ind) {
		return
	}
	o.s.obj.coeffs[v.ind] = coeff
}

// Coefficient returns the coefficient of the variable in the objective, or
// 0 if it was never set.
func (o Objective) Coefficient(v Variable) float64 { return o.s.obj.coeffs[v.ind] }

// SetMinimization makes the objective a minimization.
func (o Objective) SetMinimization() { o.s.obj.maximize = false }

// SetMaximization makes the objective a maximization.
func (o Objective) SetMaximization() { o.s.obj.maximize = true }

// Minimization reports whether the objective is a minimization.
func (o Objective) Minimization() bool { return !o.s.obj.maximize }

// Maximization reports whether the objective is a maximization.
func (o Objective) Maximization() bool { return o.s.obj.maximize }

// Offset returns the constant term of the objective.
func (o Objective) Offset() float64 { return o.s.obj.offset }

// SetOffset sets the constant term of the objective.
func (o Objective) SetOffset(offset float64) { o.s.obj.offset = offset }

// Clear removes all coefficients and the offset and resets the direction
// to minimization.
func (o Objective) Clear() {
	o.s.obj = objectiveData{coeffs: make(map[int32]float64)}
}

// Value returns the objective value at the last solution, including the
// offset.
func (o Objective) Value() float64 {
	v := o.s.obj.offset
	for ind, coeff := range o.s.obj.coeffs {
		v += coeff * o.s.vars[ind].solution
	}
	return v
}

// checkSameModelAndSetErrorf returns true if s and s2 are the same Solver.
// If false, an error with the message `format` is set on s if s.err is
// nil.
func (s *Solver) checkSameModelAndSetErrorf(s2 *Solver, format string, a ...any) bool {
	if s == s2 {
		return true
	}
	var args = make([]any, len(a)+1)
	copy(args, a)
	args[len(a)] = ErrMixedModels
	err := fmt.Errorf(format+": %w", args...)
	log.Errorf("%v; use `-log_backtrace_at` flag to get the error stack", err)
	if s.err == nil {
		s.err = err
	}
	return false
}

// Solve translates the model into canonical form and runs the barrier
// iteration, writing the solution back onto the variables. It blocks until
// the fixed iteration budget or a convergence condition is reached.
//
// An empty model (no variables or no constraints) returns Infeasible
// without building the canonical system. A model that mixed elements from
// several solvers returns Abnormal. Everything else returns Optimal; true
// infeasibility and unboundedness are not detected.
func (s *Solver) Solve() ResultStatus {
	start := time.Now()
	defer func() { s.wallTime = time.Since(start) }()
	s.iterations = 0

	if s.err != nil {
		log.Errorf("solver %q: model is invalid: %v", s.name, s.err)
		s.status = Abnormal
		return s.status
	}
	if len(s.vars) == 0 || len(s.cons) == 0 {
		s.status = Infeasible
		return s.status
	}

	sys := s.buildSystem()
	if sys.NumRows() == 0 {
		// Every bound was infinite; there is nothing to iterate on.
		s.status = Infeasible
		return s.status
	}

	log.V(1).Infof("solver %q: %d variables, %d constraints, %d canonical rows",
		s.name, len(s.vars), len(s.cons), sys.NumRows())

	res := barrier.Solve(sys)
	s.iterations = res.Iterations
	for j, v := range s.vars {
		v.solution = res.X[j]
	}
	s.status = Optimal
	return s.status
}

// isFinite reports whether f is neither infinite nor NaN.
func isFinite(f float64) bool {
	return !math.IsInf(f, 0) && !math.IsNaN(f)
}
