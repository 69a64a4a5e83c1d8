// Package costfn implements the latent-class multinomial-logit cost
// function over agents' choicesets: per-observation
// log-likelihood, gradient, and the sum-of-score outer-product matrix used
// for sandwich standard errors, evaluated at a candidate parameter vector.
//
// A CostFunction never sees a model.Choiceset directly -- BuildObservation
// (build.go) turns a Choiceset and a statespace.EstimableModel (which knows
// which utility terms are "estimate" and which are fixed) into the
// per-class per-alternative rows, and CostFunction only consumes the
// flattened Observation rows, keeping the route-building concern separate
// from the cost-evaluation concern.
//
// The softmax numerical technique (max-subtraction before exponentiating)
// is the same one statespace.ClassProbabilities uses, applied here twice
// per observation: once over classes, once over alternatives within a
// class.
package costfn
