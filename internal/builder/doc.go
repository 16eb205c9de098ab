/*
Package builder compiles a directory of hand-authored course manifests into
the library layout the learning engine consumes.

A build is a multi-phase process:

 1. Scanning: the library scanner decodes every manifest below the root into
    a format-agnostic config.Model. Files that fail to decode are kept as
    load errors rather than aborting the scan.

 2. Tree reconstruction: manifests are attached to their parents by directory.
    A lesson must live directly inside a course directory and an exercise
    directly inside a lesson directory. Anything else is a structural
    violation.

 3. Validation: every manifest is checked against the schema struct tags, then
    against the rest of the library: IDs, parent IDs, ordering indices,
    asset files, dependency references and dependency cycles.

 4. Ordering: courses are sorted topologically by dependency, lessons and
    exercises by their ordering index, with IDs breaking ties.

Violations are accumulated across all phases. Build returns either a complete
*Result or a *ValidationError listing every violation found. Write then
renders a Result into an output directory by staging it next to the target
and swapping it into place, so a failed run never leaves partial output.
*/
package builder
