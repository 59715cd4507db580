/*
Package validate turns the numbers read for a restraint into a restraint
function (Func) after checking them against the range table of their class.

Every class has a soft range, outside of which a value is kept with a
RangeValueWarning, and a hard (exclusive) range, outside of which the whole
row is rejected with a RangeValueError. Missing values are NaN.
*/
package validate
