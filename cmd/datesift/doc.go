// Command datesift sorts recovered files into a date-partitioned tree with
// deterministic names, quarantining anything it cannot place.
package main
