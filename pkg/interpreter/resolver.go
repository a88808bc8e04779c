package interpreter

import "ycp/interpreter-go/pkg/runtime"

// ResolveTerm resolves term against the builtin table. It yields Null when
// the name is not a builtin.
func (i *Interpreter) ResolveTerm(term runtime.TermValue) runtime.Value {
	return i.symbols.Resolve(i, i.evaluator, term)
}

// recoverError gives a failed builtin term another chance through the user
// and module functions. Errors nothing can recover are returned unchanged.
func (i *Interpreter) recoverError(e runtime.ErrorValue) runtime.Value {
	cause, ok := e.Cause.(runtime.TermValue)
	if !ok {
		i.logger.Debug("error value", "message", e.Message)
		return e
	}
	if _, found := i.lookupFunction(cause.Name); found {
		return i.callFunction(cause)
	}
	i.logger.Warn(e.Message, "term", runtime.Format(cause))
	return e
}
